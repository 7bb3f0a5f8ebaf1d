package host

import (
	"bufio"
	"io"
	"strconv"
	"sync"

	"github.com/cwbudde/algo-sensorpipe/pipeline"
)

// LineSink writes one sample per line in shortest round-trip decimal form.
// The first write error is kept and later samples are dropped.
type LineSink struct {
	mu  sync.Mutex
	w   *bufio.Writer
	buf []byte
	err error
}

// NewLineSink returns a sink writing to w.
func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: bufio.NewWriter(w), buf: make([]byte, 0, 32)}
}

// Publish implements pipeline.Sink.
func (s *LineSink) Publish(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	s.buf = strconv.AppendFloat(s.buf[:0], x, 'f', -1, 64)
	s.buf = append(s.buf, '\n')
	_, s.err = s.w.Write(s.buf)
}

// Flush writes any buffered lines to the underlying writer.
func (s *LineSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.err = s.w.Flush()
	return s.err
}

// Err returns the first write error, if any.
func (s *LineSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// MultiSink publishes every sample to each of its sinks in order.
type MultiSink []pipeline.Sink

// Publish implements pipeline.Sink.
func (m MultiSink) Publish(x float64) {
	for _, s := range m {
		s.Publish(x)
	}
}
