// Package identity supplies the stable user id and display name used as
// the leaderboard identity. The engine never requires a reachable
// provider; the default degrades to a local, unauthenticated identity.
package identity

import "strings"

type Identity struct {
	ID   string
	Name string
}

type Provider interface {
	Whoami() Identity
}

const (
	localID   = "local"
	localName = "Trader"
)

// Local is a Provider backed by nothing but configuration.
type Local struct {
	name string
}

func NewLocal(name string) *Local {
	return &Local{name: strings.TrimSpace(name)}
}

func (l *Local) Whoami() Identity {
	name := l.name
	if name == "" {
		name = localName
	}
	return Identity{ID: localID, Name: name}
}
