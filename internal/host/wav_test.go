package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWAVSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	s, err := CreateWAVSink(path, 1000, 5)
	if err != nil {
		t.Fatalf("CreateWAVSink() error = %v", err)
	}

	in := []float64{0, 2.5, 5, 7, -1}
	const extra = wavChunkSize + 10
	for _, x := range in {
		s.Publish(x)
	}
	for range extra {
		s.Publish(2.5)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatal("decoder rejected file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if d.SampleRate != 1000 || d.NumChans != 1 || d.BitDepth != 16 {
		t.Fatalf("format = %d Hz, %d ch, %d bit", d.SampleRate, d.NumChans, d.BitDepth)
	}
	if len(buf.Data) != len(in)+extra {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(in)+extra)
	}

	want := []int{-32767, 0, 32767, 32767, -32767}
	for i, w := range want {
		if buf.Data[i] != w {
			t.Fatalf("sample %d = %d, want %d", i, buf.Data[i], w)
		}
	}
}

func TestNewWAVSinkValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if _, err := CreateWAVSink(path, 0, 5); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := CreateWAVSink(path, 1000, 0); err == nil {
		t.Fatal("expected error for zero vpp")
	}
}
