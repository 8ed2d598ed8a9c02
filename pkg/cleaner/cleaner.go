// Package cleaner provides interfaces and implementations for cleaning
// scraped text. Cleaners transform noisy raw text into a format suitable
// for downstream corpus use.
package cleaner

// Cleaner transforms raw text into a cleaned format.
type Cleaner interface {
	// Clean transforms the input text into a cleaned format.
	// The output format depends on the implementation.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
