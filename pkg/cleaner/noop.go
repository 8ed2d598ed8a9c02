package cleaner

// NoopCleaner passes content through without modification.
// Use this when the input is already clean, or to disable cleaning
// in a pipeline that expects a Cleaner.
type NoopCleaner struct{}

// NewNoop creates a new no-op cleaner.
func NewNoop() *NoopCleaner {
	return &NoopCleaner{}
}

// Clean returns the input unchanged.
func (c *NoopCleaner) Clean(text string) (string, error) {
	return text, nil
}

// Name returns the cleaner type.
func (c *NoopCleaner) Name() string {
	return "noop"
}
