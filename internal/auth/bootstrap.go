package auth

import (
	"context"
	"errors"
)

// ErrNoToken means the auth service answered without an access token.
var ErrNoToken = errors.New("no access token in auth response")

// State of the session bootstrap.
type State int

const (
	AwaitingCode State = iota
	Exchanging
	Resolved
)

func (s State) String() string {
	switch s {
	case AwaitingCode:
		return "awaiting-code"
	case Exchanging:
		return "exchanging"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome is the resolved bootstrap: where to send the browser and, on
// success, the token to persist.
type Outcome struct {
	State    State
	Token    string
	Redirect string
	Err      error
	// Trace lists the states visited, in order.
	Trace []State
}

// Succeeded reports whether a token was obtained.
func (o Outcome) Succeeded() bool {
	return o.Token != ""
}

// Bootstrap runs the callback flow once. With no code it resolves to a
// failure without touching the network.
func Bootstrap(ctx context.Context, code string, ex Exchanger) Outcome {
	out := Outcome{State: AwaitingCode, Trace: []State{AwaitingCode}}

	if code == "" {
		return out.resolve("", errors.New("missing authorization code"))
	}

	out.State = Exchanging
	out.Trace = append(out.Trace, Exchanging)
	token, err := ex.Exchange(ctx, code)
	return out.resolve(token, err)
}

func (o Outcome) resolve(token string, err error) Outcome {
	o.State = Resolved
	o.Trace = append(o.Trace, Resolved)
	o.Err = err
	if err != nil || token == "" {
		o.Redirect = "/login"
		return o
	}
	o.Token = token
	o.Redirect = "/"
	return o
}
