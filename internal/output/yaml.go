package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/indusnlp/shuddhi/pkg/qna"
)

// YAMLWriter writes records as a YAML sequence.
type YAMLWriter struct {
	w     *bufio.Writer
	items []qna.Record
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]qna.Record, 0),
	}
}

// Write buffers a single record.
func (w *YAMLWriter) Write(rec qna.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers multiple records.
func (w *YAMLWriter) WriteAll(recs []qna.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(w.items); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
