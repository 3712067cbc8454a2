package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Exchanger trades an authorization code for an access token.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

// SSOClient talks to the external auth service.
type SSOClient struct {
	baseURL string
	http    *http.Client
}

func NewSSOClient(baseURL string, hc *http.Client) *SSOClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return &SSOClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// LoginURL is where the browser goes to start the SSO flow.
func (s *SSOClient) LoginURL() string {
	return s.baseURL + "/auth/login"
}

type exchangeResponse struct {
	AccessToken string `json:"accessToken"`
}

// Exchange calls GET /auth/callback?code=... and returns the access token.
// A body that is not JSON counts as an empty object; the status code is
// not consulted, only the presence of accessToken.
func (s *SSOClient) Exchange(ctx context.Context, code string) (string, error) {
	u := s.baseURL + "/auth/callback?code=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth exchange: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("auth exchange: read body: %w", err)
	}

	var body exchangeResponse
	if err := json.Unmarshal(data, &body); err != nil {
		body = exchangeResponse{}
	}
	if body.AccessToken == "" {
		return "", ErrNoToken
	}
	return body.AccessToken, nil
}
