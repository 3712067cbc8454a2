package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PERSONAS_ADDR", "")
	t.Setenv("AUTH_URL", "")
	t.Setenv("API_URL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load("does-not-exist.env")
	if cfg.Addr != ":3000" {
		t.Fatalf("expected default addr :3000, got %q", cfg.Addr)
	}
	if cfg.AuthURL != "http://localhost" || cfg.APIURL != "http://localhost" {
		t.Fatalf("unexpected default base urls: %+v", cfg)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("default env should not be development")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("AUTH_URL", "https://sso.example.com/")
	t.Setenv("API_URL", "https://api.example.com")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load("does-not-exist.env")
	if cfg.AuthURL != "https://sso.example.com" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.AuthURL)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development mode")
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("expected jwt secret to be read")
	}
}
