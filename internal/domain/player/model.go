package player

import (
	"fmt"
	"time"
)

// Identity is the external login a player authenticated with. Players are
// keyed by (Provider, SubjectID); display names are mutable and never used
// for lookup.
type Identity struct {
	Provider  string
	SubjectID string
}

func (i Identity) Validate() error {
	if i.Provider == "" {
		return fmt.Errorf("identity provider is required")
	}
	if i.SubjectID == "" {
		return fmt.Errorf("identity subject id is required")
	}

	return nil
}

// Player is a registered game participant.
type Player struct {
	ID        int64
	Name      string
	Identity  Identity
	CreatedAt time.Time
}

// Session is a server-side login record. The token is opaque; everything the
// server trusts about the caller lives here, never in the cookie.
type Session struct {
	Token     string
	PlayerID  int64
	CreatedAt time.Time
}
