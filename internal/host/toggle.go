package host

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

// ErrQuit is returned by KeyboardToggle.Listen when the user asks to stop.
var ErrQuit = errors.New("quit requested")

const (
	keyToggle = ' '
	keyQuit   = 'q'
	keyCtrlC  = 0x03
)

// StaticToggle is a toggle line fixed at one level.
type StaticToggle bool

// Read implements pipeline.ToggleInput.
func (s StaticToggle) Read() bool { return bool(s) }

// KeyboardToggle is a toggle line flipped from the keyboard: space flips
// it, q or Ctrl-C ends Listen with ErrQuit.
type KeyboardToggle struct {
	line   atomic.Bool
	logger *slog.Logger
}

// NewKeyboardToggle returns a toggle starting at initial.
func NewKeyboardToggle(initial bool, logger *slog.Logger) *KeyboardToggle {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	k := &KeyboardToggle{logger: logger}
	k.line.Store(initial)
	return k
}

// Read implements pipeline.ToggleInput.
func (k *KeyboardToggle) Read() bool { return k.line.Load() }

// HandleKey applies one key press and reports whether it requests quit.
func (k *KeyboardToggle) HandleKey(b byte) (quit bool) {
	switch b {
	case keyToggle:
		on := !k.line.Load()
		k.line.Store(on)
		k.logger.Debug("toggle key", slog.Bool("line", on))
	case keyQuit, 'Q', keyCtrlC:
		return true
	}
	return false
}

// Listen reads keys from r until ctx is done, r fails, or a quit key
// arrives. A quit key returns ErrQuit; io.EOF returns nil. The reading
// goroutine may stay blocked in r.Read after ctx is done.
func (k *KeyboardToggle) Listen(ctx context.Context, r io.Reader) error {
	keys := make(chan byte)
	errc := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case keys <- buf[0]:
				case <-stop:
					return
				}
			}
			if err != nil {
				errc <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b := <-keys:
			if k.HandleKey(b) {
				return ErrQuit
			}
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// RawStdin puts stdin into raw mode so single key presses arrive without
// echo or line buffering. The returned function restores the terminal.
func RawStdin() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, errors.New("stdin is not a terminal")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, err
	}
	return func() { _ = term.Restore(fd, old) }, nil
}
