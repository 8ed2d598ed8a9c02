package output

import (
	"bufio"
	"io"

	"github.com/indusnlp/shuddhi/pkg/qna"
)

// TextWriter writes records in the numbered plain-text layout.
type TextWriter struct {
	w     *bufio.Writer
	items []qna.Record
}

// NewTextWriter creates a plain-text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{
		w:     bufio.NewWriter(w),
		items: make([]qna.Record, 0),
	}
}

// Write buffers a single record.
func (w *TextWriter) Write(rec qna.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers multiple records.
func (w *TextWriter) WriteAll(recs []qna.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush renders the buffered records.
func (w *TextWriter) Flush() error {
	if _, err := w.w.WriteString(qna.FormatText(w.items)); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
