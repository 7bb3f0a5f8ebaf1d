package acquire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CountReader is a Digitizer that replays integer counts, one per line,
// from a capture. It never fails a read: after the end of input or a
// malformed line it keeps returning the last good count. The first such
// problem is kept for Err; io.EOF is not reported.
type CountReader struct {
	sc   *bufio.Scanner
	last uint32
	line int
	done bool
	err  error
}

// NewCountReader reads counts from r.
func NewCountReader(r io.Reader) *CountReader {
	return &CountReader{sc: bufio.NewScanner(r)}
}

// ReadCount returns the next count from the capture.
func (c *CountReader) ReadCount() uint32 {
	for !c.done {
		if !c.sc.Scan() {
			c.done = true
			if err := c.sc.Err(); err != nil && c.err == nil {
				c.err = fmt.Errorf("count reader: %w", err)
			}
			break
		}
		c.line++
		text := strings.TrimSpace(c.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			if c.err == nil {
				c.err = fmt.Errorf("count reader line %d: %w", c.line, err)
			}
			return c.last
		}
		c.last = uint32(v)
		return c.last
	}
	return c.last
}

// Exhausted reports whether the capture has ended.
func (c *CountReader) Exhausted() bool { return c.done }

// Err returns the first read or parse error.
func (c *CountReader) Err() error { return c.err }
