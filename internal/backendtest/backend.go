// Package backendtest provides an in-memory stand-in for the remote persona
// API and the SSO service, for handler tests.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/wichananm65/personas-web/internal/domain"
)

// Call records one request received by the fake.
type Call struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	RequestID   string
	Fields      map[string]string
	FileField   string
	FileName    string
	FileType    string
	FileSize    int
}

// Backend is an httptest server holding personas and log entries.
type Backend struct {
	*httptest.Server

	mu       sync.RWMutex
	personas []domain.Persona
	logs     []domain.LogEntry
	calls    []Call
	failures map[string]int

	// Answer is returned by the RAG endpoint.
	Answer string
	// AccessToken is returned by the auth exchange; empty means {}.
	AccessToken string
}

// New starts a fake seeded with personas.
func New(seed []domain.Persona) *Backend {
	b := &Backend{
		personas: make([]domain.Persona, 0, len(seed)),
		failures: map[string]int{},
	}
	b.personas = append(b.personas, seed...)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /personas", b.list)
	mux.HandleFunc("POST /personas", b.create)
	mux.HandleFunc("GET /personas/{id}", b.get)
	mux.HandleFunc("PUT /personas/{id}", b.update)
	mux.HandleFunc("DELETE /personas/{id}", b.delete)
	mux.HandleFunc("GET /logs", b.listLogs)
	mux.HandleFunc("POST /rag/consulta", b.rag)
	mux.HandleFunc("GET /auth/callback", b.exchange)

	b.Server = httptest.NewServer(b.record(mux))
	return b
}

// FailWith makes the next requests to "METHOD /path" answer status.
func (b *Backend) FailWith(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = status
}

// SetLogs replaces the audit trail.
func (b *Backend) SetLogs(entries []domain.LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logs = append([]domain.LogEntry(nil), entries...)
}

// Personas returns a copy of the stored records.
func (b *Backend) Personas() []domain.Persona {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Persona, len(b.personas))
	copy(out, b.personas)
	return out
}

// Calls returns every recorded request.
func (b *Backend) Calls() []Call {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// Count returns how many requests matched method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// LastCall returns the most recent request matching method and path.
func (b *Backend) LastCall(method, path string) (Call, bool) {
	calls := b.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i], true
		}
	}
	return Call{}, false
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{
			Method:      r.Method,
			Path:        r.URL.Path,
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
			Fields:      map[string]string{},
		}
		if err := r.ParseMultipartForm(4 << 20); err == nil {
			for k, v := range r.MultipartForm.Value {
				call.Fields[k] = v[0]
			}
			for k, fh := range r.MultipartForm.File {
				call.FileField = k
				call.FileName = fh[0].Filename
				call.FileType = fh[0].Header.Get("Content-Type")
				call.FileSize = int(fh[0].Size)
			}
		}

		b.mu.Lock()
		b.calls = append(b.calls, call)
		status, fail := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if fail {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Personas())
}

func (b *Backend) get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, p := range b.Personas() {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "persona not found"})
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	p := personaFromForm(r)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.personas {
		if existing.ID == p.ID {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "La persona ya existe"})
			return
		}
	}
	b.personas = append(b.personas, p)
	writeJSON(w, http.StatusCreated, p)
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p := personaFromForm(r)
	p.ID = id

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.personas {
		if existing.ID == id {
			p.PhotoURL = existing.PhotoURL
			b.personas[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "persona not found"})
}

func (b *Backend) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.personas {
		if existing.ID == id {
			b.personas = append(b.personas[:i], b.personas[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "persona not found"})
}

func (b *Backend) listLogs(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	logs := append([]domain.LogEntry{}, b.logs...)
	b.mu.RUnlock()
	writeJSON(w, http.StatusOK, logs)
}

func (b *Backend) rag(w http.ResponseWriter, r *http.Request) {
	var q domain.RAGQuestion
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil || q.Question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "question is required"})
		return
	}
	writeJSON(w, http.StatusOK, domain.RAGAnswer{Answer: b.Answer})
}

func (b *Backend) exchange(w http.ResponseWriter, r *http.Request) {
	if b.AccessToken == "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{}")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": b.AccessToken})
}

func personaFromForm(r *http.Request) domain.Persona {
	v := func(k string) string {
		if r.MultipartForm == nil {
			return ""
		}
		if vals := r.MultipartForm.Value[k]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}
	p := domain.Persona{
		ID:         v("id"),
		IDType:     v("idType"),
		FirstName:  v("firstName"),
		SecondName: v("secondName"),
		Surname:    v("surname"),
		Birthdate:  v("birthdate"),
		Gender:     v("gender"),
		Email:      v("email"),
		Phone:      v("phone"),
	}
	if r.MultipartForm != nil && len(r.MultipartForm.File["foto"]) > 0 {
		p.PhotoURL = "/uploads/" + r.MultipartForm.File["foto"][0].Filename
	}
	return p
}
