package config

import (
	"fmt"
	"strings"
)

// Mode selects the acquisition source.
type Mode int

const (
	ModeSynthetic Mode = iota
	ModePhysical
)

var modeNames = []string{"synthetic", "physical"}

// TapSet selects the FIR coefficient set.
type TapSet int

const (
	TapsMovingAverage TapSet = iota
	TapsHighPass
	TapsFile
)

var tapSetNames = []string{"moving-average", "high-pass", "file"}

// ToggleTarget names the enable flag driven by the external toggle line.
type ToggleTarget int

const (
	ToggleNone ToggleTarget = iota
	ToggleNoise
	ToggleRectify
	ToggleSaturate
	ToggleFilter
)

var toggleNames = []string{"none", "noise", "rectify", "saturate", "filter"}

func (m Mode) valid() bool         { return m >= 0 && int(m) < len(modeNames) }
func (s TapSet) valid() bool       { return s >= 0 && int(s) < len(tapSetNames) }
func (t ToggleTarget) valid() bool { return t >= 0 && int(t) < len(toggleNames) }

func (m Mode) String() string         { return enumString(int(m), modeNames) }
func (s TapSet) String() string       { return enumString(int(s), tapSetNames) }
func (t ToggleTarget) String() string { return enumString(int(t), toggleNames) }

// ParseMode parses "synthetic" or "physical".
func ParseMode(s string) (Mode, error) {
	i, err := parseEnum("acquisition mode", s, modeNames)
	return Mode(i), err
}

// ParseTapSet parses "moving-average", "high-pass" or "file".
func ParseTapSet(s string) (TapSet, error) {
	i, err := parseEnum("tap set", s, tapSetNames)
	return TapSet(i), err
}

// ParseToggleTarget parses "none", "noise", "rectify", "saturate" or "filter".
func ParseToggleTarget(s string) (ToggleTarget, error) {
	i, err := parseEnum("toggle target", s, toggleNames)
	return ToggleTarget(i), err
}

// ToggleTargets returns every target name in declaration order.
func ToggleTargets() []string {
	return append([]string(nil), toggleNames...)
}

func (m Mode) MarshalText() ([]byte, error)         { return marshalEnum(int(m), modeNames) }
func (s TapSet) MarshalText() ([]byte, error)       { return marshalEnum(int(s), tapSetNames) }
func (t ToggleTarget) MarshalText() ([]byte, error) { return marshalEnum(int(t), toggleNames) }

func (m *Mode) UnmarshalText(b []byte) (err error) {
	*m, err = ParseMode(string(b))
	return err
}

func (s *TapSet) UnmarshalText(b []byte) (err error) {
	*s, err = ParseTapSet(string(b))
	return err
}

func (t *ToggleTarget) UnmarshalText(b []byte) (err error) {
	*t, err = ParseToggleTarget(string(b))
	return err
}

func enumString(i int, names []string) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func marshalEnum(i int, names []string) ([]byte, error) {
	if i < 0 || i >= len(names) {
		return nil, fmt.Errorf("%w: enum value out of range: %d", ErrInvalidConfig, i)
	}
	return []byte(names[i]), nil
}

func parseEnum(kind, s string, names []string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q (want one of %s)", ErrInvalidConfig, kind, s, strings.Join(names, ", "))
}
