package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrOpaqueToken is returned by Inspect when the token is not a JWT.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Identity is what the UI can learn from a JWT access token without
// verifying it. Verification is the backend's job.
type Identity struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// Display returns the best label for the nav bar.
func (i Identity) Display() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	default:
		return i.Subject
	}
}

// Expired reports whether the token carries an exp claim in the past.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect decodes the claims of a JWT access token. Opaque tokens yield
// ErrOpaqueToken and must be treated as valid until the backend says otherwise.
func Inspect(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, ErrOpaqueToken
	}

	id := Identity{
		Subject: stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
	}
	if id.Name == "" {
		id.Name = stringClaim(claims, "preferred_username")
	}
	if exp, ok := claims["exp"].(float64); ok {
		id.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return id, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
