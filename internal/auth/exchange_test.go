package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/personas-web/internal/backendtest"
)

func TestSSOClient_ExchangeReturnsToken(t *testing.T) {
	backend := backendtest.New(nil)
	defer backend.Close()
	backend.AccessToken = "tok-abc"

	sso := NewSSOClient(backend.URL+"/", nil)
	token, err := sso.Exchange(context.Background(), "a b&c")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, 1, backend.Count(http.MethodGet, "/auth/callback"))
	assert.Equal(t, backend.URL+"/auth/login", sso.LoginURL())
}

func TestSSOClient_MissingToken(t *testing.T) {
	backend := backendtest.New(nil)
	defer backend.Close()

	_, err := NewSSOClient(backend.URL, nil).Exchange(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestSSOClient_NonJSONBodyCountsAsEmpty(t *testing.T) {
	var gotCode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCode = r.URL.Query().Get("code")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewSSOClient(srv.URL, nil).Exchange(context.Background(), "a b&c")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, "a b&c", gotCode)
}

func TestSSOClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewSSOClient(url, nil).Exchange(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)
}
