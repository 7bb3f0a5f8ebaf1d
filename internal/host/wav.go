package host

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-sensorpipe/dsp/core"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavChunkSize = 1024
	wavFormatPCM = 1
)

// WAVSink records the sample stream as mono 16-bit PCM. Volts in [0, VPP]
// map onto the full PCM range; values outside it are clipped.
type WAVSink struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	vpp    float64
	closer io.Closer
	err    error
}

// NewWAVSink returns a sink encoding to ws at the given sample rate.
func NewWAVSink(ws io.WriteSeeker, sampleRate int, vpp float64) (*WAVSink, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav sample rate must be > 0: %d", sampleRate)
	}
	if vpp <= 0 || !core.IsFinite(vpp) {
		return nil, fmt.Errorf("wav vpp must be > 0: %f", vpp)
	}

	return &WAVSink{
		enc: wav.NewEncoder(ws, sampleRate, wavBitDepth, 1, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:           make([]int, 0, wavChunkSize),
			SourceBitDepth: wavBitDepth,
		},
		vpp: vpp,
	}, nil
}

// CreateWAVSink creates (or truncates) path and records into it. Close
// also closes the file.
func CreateWAVSink(path string, sampleRate int, vpp float64) (*WAVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wav sink: %w", err)
	}
	s, err := NewWAVSink(f, sampleRate, vpp)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// Publish implements pipeline.Sink.
func (s *WAVSink) Publish(x float64) {
	if s.err != nil {
		return
	}
	s.buf.Data = append(s.buf.Data, s.pcm(x))
	if len(s.buf.Data) == wavChunkSize {
		s.flush()
	}
}

func (s *WAVSink) pcm(x float64) int {
	const full = 1<<(wavBitDepth-1) - 1
	v := core.Clamp(2*x/s.vpp-1, -1, 1)
	if math.IsNaN(v) {
		v = 0
	}
	return int(math.Round(v * full))
}

func (s *WAVSink) flush() {
	if len(s.buf.Data) == 0 {
		return
	}
	s.err = s.enc.Write(s.buf)
	s.buf.Data = s.buf.Data[:0]
}

// Close writes the remaining samples and the WAV header.
func (s *WAVSink) Close() error {
	s.flush()
	if err := s.enc.Close(); err != nil && s.err == nil {
		s.err = err
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil && s.err == nil {
			s.err = err
		}
	}
	return s.err
}
