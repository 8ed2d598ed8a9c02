package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/indusnlp/shuddhi/pkg/qna"
)

// JSONWriter writes records as a single JSON array. HTML escaping is
// disabled so Devanagari text and punctuation stay readable.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []qna.Record
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]qna.Record, 0),
	}
}

// Write buffers a single record for array output.
func (w *JSONWriter) Write(rec qna.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers all records at once.
func (w *JSONWriter) WriteAll(recs []qna.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a JSON array.
func (w *JSONWriter) Flush() error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(w.items); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON, one record per line.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single record as a JSON line.
func (w *JSONLWriter) Write(rec qna.Record) error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes multiple records as JSON lines.
func (w *JSONLWriter) WriteAll(recs []qna.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
