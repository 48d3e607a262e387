package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, 0)

	log.Info("visible", "k", 1)
	log.V(1).Info("hidden")

	out := buf.String()
	if !strings.Contains(out, "visible") || !strings.Contains(out, "k=1") {
		t.Errorf("missing info line: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("V(1) logged at verbosity 0: %q", out)
	}

	buf.Reset()
	log = New(&buf, 1)
	log.V(1).Info("detail")
	if !strings.Contains(buf.String(), "detail") {
		t.Errorf("V(1) missing at verbosity 1: %q", buf.String())
	}
}
