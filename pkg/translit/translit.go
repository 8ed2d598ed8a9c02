// Package translit provides the transliteration capability consumed by the
// script gate. The gate treats it as an opaque synchronous call: one token
// in, one token out, and any failure degrades to passing the original token
// through. Two variants exist, a REST client for a hosted transliteration
// model and an identity fallback for when no engine is available, selected
// once at construction time.
package translit

import (
	"context"
)

// Transliterator converts a single token into the target script.
type Transliterator interface {
	// Transliterate converts one whitespace-delimited token.
	// Implementations return an error rather than guessing; the caller
	// decides how to degrade.
	Transliterate(ctx context.Context, token string) (string, error)

	// Name returns the engine identifier for logging.
	Name() string

	// Available reports whether this engine is ready to use.
	Available() bool
}

// Identity is the unavailable-engine variant: it returns every token
// unchanged and never fails.
type Identity struct{}

// NewIdentity creates the identity transliterator.
func NewIdentity() Identity {
	return Identity{}
}

// Transliterate returns the token unchanged.
func (Identity) Transliterate(_ context.Context, token string) (string, error) {
	return token, nil
}

// Name returns the engine identifier.
func (Identity) Name() string {
	return "identity"
}

// Available always reports true; identity needs no resources.
func (Identity) Available() bool {
	return true
}
