package rag

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/backendtest"
	"github.com/wichananm65/personas-web/internal/domain"
	"github.com/wichananm65/personas-web/internal/web"
)

type stubQuerier struct {
	answer string
	err    error
	asked  []string
}

func (s *stubQuerier) QueryRAG(_ context.Context, q string) (domain.RAGAnswer, error) {
	s.asked = append(s.asked, q)
	return domain.RAGAnswer{Answer: s.answer}, s.err
}

func newApp(q Querier) *fiber.App {
	app := web.New(web.Options{})
	NewHandler(q, nil).RegisterRoutes(app)
	return app
}

func ask(t *testing.T, app *fiber.App, question string) (int, string) {
	t.Helper()
	form := url.Values{"question": {question}}
	req := httptest.NewRequest(http.MethodPost, "/rag", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok"})

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(b)
}

func TestPage_ShowsExample(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/rag", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok"})
	res, err := newApp(&stubQuerier{}).Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	b, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(b), "¿Cuál es el empleado más joven que se ha registrado?")
}

func TestAsk_RendersAnswer(t *testing.T) {
	backend := backendtest.New(nil)
	defer backend.Close()
	backend.Answer = "Ana"

	status, html := ask(t, newApp(apiclient.New(backend.URL)), "  ¿Quién es la más joven?  ")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, html, `data-role="answer">Ana</p>`)
	assert.Contains(t, html, `id="loading" class="muted hidden"`)

	call, ok := backend.LastCall(http.MethodPost, "/rag/consulta")
	require.True(t, ok)
	assert.Equal(t, "application/json", call.ContentType)
	assert.Equal(t, "Bearer tok", call.Auth)
}

func TestAsk_BlankQuestionSendsNothing(t *testing.T) {
	q := &stubQuerier{answer: "unused"}

	status, html := ask(t, newApp(q), "   ")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, q.asked)
	assert.NotContains(t, html, `data-role="answer"`)
}

func TestAsk_TrimsQuestion(t *testing.T) {
	q := &stubQuerier{answer: "Pedro Pérez"}

	_, html := ask(t, newApp(q), "  ¿Quién?  ")
	assert.Equal(t, []string{"¿Quién?"}, q.asked)
	assert.Contains(t, html, "Pedro Pérez")
}

func TestAsk_ErrorShowsFixedMessage(t *testing.T) {
	q := &stubQuerier{err: errors.New("boom")}

	status, html := ask(t, newApp(q), "hola")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, html, msgQueryFailed)
	assert.Contains(t, html, `id="loading" class="muted hidden"`)
}

func TestAsk_ExpiredSessionRedirects(t *testing.T) {
	backend := backendtest.New(nil)
	defer backend.Close()
	backend.FailWith(http.MethodPost, "/rag/consulta", http.StatusUnauthorized)

	form := url.Values{"question": {"hola"}}
	req := httptest.NewRequest(http.MethodPost, "/rag", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok"})

	res, err := newApp(apiclient.New(backend.URL)).Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
	assert.Len(t, res.Header.Values("Set-Cookie"), 1)
}
