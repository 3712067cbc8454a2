package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wichananm65/personas-web/internal/domain"
)

// CreatePersona posts a new record as multipart.
func (c *Client) CreatePersona(ctx context.Context, form *Form) (*domain.Persona, error) {
	var out *domain.Persona
	err := c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/personas",
		Body:        form,
		CustomError: "Error al crear persona",
	}, &out)
	return out, err
}

// ListPersonas returns every record.
func (c *Client) ListPersonas(ctx context.Context) ([]domain.Persona, error) {
	out := []domain.Persona{}
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/personas"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Persona{}
	}
	return out, nil
}

// GetPersona fetches one record by identifier.
func (c *Client) GetPersona(ctx context.Context, id string) (*domain.Persona, error) {
	var out *domain.Persona
	err := c.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        "/personas/" + url.PathEscape(id),
		CustomError: "Error al obtener persona",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, statusError(http.StatusNotFound, "")
	}
	return out, nil
}

// UpdatePersona replaces a record with the given multipart body.
func (c *Client) UpdatePersona(ctx context.Context, id string, form *Form) (*domain.Persona, error) {
	var out *domain.Persona
	err := c.Do(ctx, Request{
		Method:      http.MethodPut,
		Path:        "/personas/" + url.PathEscape(id),
		Body:        form,
		CustomError: "Error al actualizar persona",
	}, &out)
	return out, err
}

// DeletePersona removes a record.
func (c *Client) DeletePersona(ctx context.Context, id string) error {
	return c.Do(ctx, Request{
		Method:      http.MethodDelete,
		Path:        "/personas/" + url.PathEscape(id),
		CustomError: "Error al eliminar persona",
	}, nil)
}

// ListLogs returns the audit trail.
func (c *Client) ListLogs(ctx context.Context) ([]domain.LogEntry, error) {
	out := []domain.LogEntry{}
	err := c.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        "/logs",
		CustomError: "Error al obtener logs",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.LogEntry{}
	}
	return out, nil
}

// QueryRAG asks the retrieval-augmented endpoint a question.
func (c *Client) QueryRAG(ctx context.Context, question string) (domain.RAGAnswer, error) {
	var out domain.RAGAnswer
	err := c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/rag/consulta",
		Body:        domain.RAGQuestion{Question: question},
		CustomError: "Error en el servicio RAG",
	}, &out)
	return out, err
}
