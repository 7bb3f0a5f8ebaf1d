package host

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogActuatorLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	a := NewLogActuator(slog.New(slog.NewTextHandler(&buf, nil)))

	for _, h := range []bool{false, true, true, false, false, true} {
		a.Set(h)
	}
	if !a.High() {
		t.Fatal("High() = false after last Set(true)")
	}
	if a.Transitions() != 3 {
		t.Fatalf("Transitions() = %d, want 3", a.Transitions())
	}
	if n := strings.Count(buf.String(), "actuator line"); n != 3 {
		t.Fatalf("logged %d transitions, want 3", n)
	}
}
