package img2ascii

import (
	"bufio"
	"io"
	"strings"
)

// RowTerminator is written to the sink after the last cell of every row.
const RowTerminator = '\n'

// Sink receives converted characters one at a time, in row-major order.
// Returning an error aborts the conversion. A Sink must not call back into
// the converter.
type Sink interface {
	WriteChar(c byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(c byte) error

// WriteChar calls f(c).
func (f SinkFunc) WriteChar(c byte) error {
	return f(c)
}

// flusher is implemented by sinks that buffer. The converter flushes them
// when a conversion ends, successfully or not.
type flusher interface {
	Flush() error
}

// WriterSink buffers characters and writes them to an io.Writer. Write
// errors surface from WriteChar once the buffer fills, or from Flush.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// WriteChar buffers c.
func (s *WriterSink) WriteChar(c byte) error {
	return s.w.WriteByte(c)
}

// Flush writes any buffered characters to the underlying writer.
func (s *WriterSink) Flush() error {
	return s.w.Flush()
}

// StringSink accumulates the output in memory.
type StringSink struct {
	strings.Builder
}

// WriteChar appends c.
func (s *StringSink) WriteChar(c byte) error {
	return s.WriteByte(c)
}
