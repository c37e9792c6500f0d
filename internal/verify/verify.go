// Package verify abstracts the contact form's anti-abuse token check.
// The production verification backend was never wired upstream, so the
// collaborator stays behind an interface: handlers only see Verifier,
// and the acceptance rule lives in the chosen implementation.
package verify

import (
	"context"
	"strings"
)

// Verifier reports whether a submission token is acceptable.
type Verifier interface {
	Verify(ctx context.Context, token string) bool
}

// PrefixVerifier accepts tokens carrying a configured prefix. It is the
// development-mode implementation; a real challenge service slots in by
// implementing Verifier.
type PrefixVerifier struct {
	Prefix string
}

func (v PrefixVerifier) Verify(_ context.Context, token string) bool {
	return v.Prefix != "" && strings.HasPrefix(token, v.Prefix)
}
