package persona

import (
	"context"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/domain"
)

// Backend is the part of the API client the record views use.
type Backend interface {
	CreatePersona(ctx context.Context, form *apiclient.Form) (*domain.Persona, error)
	ListPersonas(ctx context.Context) ([]domain.Persona, error)
	GetPersona(ctx context.Context, id string) (*domain.Persona, error)
	UpdatePersona(ctx context.Context, id string, form *apiclient.Form) (*domain.Persona, error)
	DeletePersona(ctx context.Context, id string) error
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) List(ctx context.Context) ([]domain.Persona, error) {
	return s.backend.ListPersonas(ctx)
}

// Load fetches a record and converts it to an edit form.
func (s *Service) Load(ctx context.Context, id string) (Form, *domain.Persona, error) {
	p, err := s.backend.GetPersona(ctx, id)
	if err != nil {
		return Form{}, nil, err
	}
	return FormFromPersona(*p), p, nil
}

// Create validates the form and relays it. Invalid forms never reach the
// backend.
func (s *Service) Create(ctx context.Context, f Form) (*domain.Persona, error) {
	if err := f.Validate(ModeCreate); err != nil {
		return nil, err
	}
	return s.backend.CreatePersona(ctx, f.Multipart())
}

// Update validates the form and relays it. The photo is only sent when a
// new file was chosen.
func (s *Service) Update(ctx context.Context, id string, f Form) (*domain.Persona, error) {
	if err := f.Validate(ModeEdit); err != nil {
		return nil, err
	}
	return s.backend.UpdatePersona(ctx, id, f.Multipart())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.backend.DeletePersona(ctx, id)
}
