package monitoring

import (
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) { got = format })
	Logf("decoded %d records")
	if got != "decoded %d records" {
		t.Errorf("custom logger saw %q", got)
	}

	// nil installs a no-op, never a nil func.
	SetLogger(nil)
	got = ""
	Logf("dropped")
	if got != "" {
		t.Error("no-op logger must not forward")
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf must be callable by default")
	}
	Logf("conversion of %s finished", "capture.udf")
}
