package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExchanger struct {
	token string
	err   error
	codes []string
}

func (f *fakeExchanger) Exchange(_ context.Context, code string) (string, error) {
	f.codes = append(f.codes, code)
	return f.token, f.err
}

func TestBootstrap_NoCodeSkipsExchange(t *testing.T) {
	ex := &fakeExchanger{token: "tok"}

	out := Bootstrap(context.Background(), "", ex)

	assert.Empty(t, ex.codes)
	assert.False(t, out.Succeeded())
	assert.Equal(t, "/login", out.Redirect)
	assert.Equal(t, []State{AwaitingCode, Resolved}, out.Trace)
}

func TestBootstrap_Success(t *testing.T) {
	ex := &fakeExchanger{token: "tok"}

	out := Bootstrap(context.Background(), "abc", ex)

	assert.Equal(t, []string{"abc"}, ex.codes)
	assert.True(t, out.Succeeded())
	assert.Equal(t, "tok", out.Token)
	assert.Equal(t, "/", out.Redirect)
	assert.Equal(t, []State{AwaitingCode, Exchanging, Resolved}, out.Trace)
	assert.Equal(t, "resolved", out.State.String())
}

func TestBootstrap_FailureGoesToLogin(t *testing.T) {
	for name, ex := range map[string]*fakeExchanger{
		"no token":    {err: ErrNoToken},
		"unreachable": {err: errors.New("dial tcp: connection refused")},
	} {
		t.Run(name, func(t *testing.T) {
			out := Bootstrap(context.Background(), "abc", ex)
			assert.False(t, out.Succeeded())
			assert.Equal(t, "/login", out.Redirect)
			assert.Error(t, out.Err)
			assert.Len(t, ex.codes, 1)
		})
	}
}
