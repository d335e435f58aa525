package debug

import (
	"bytes"
	"log"
	"testing"
)

func TestLogRespectsEnabledFlag(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	was := Enabled
	defer func() { Enabled = was }()

	Enabled = false
	Log("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("disabled channel wrote output: %q", buf.String())
	}

	Enabled = true
	Log("shown %d", 2)
	if !bytes.Contains(buf.Bytes(), []byte("[DEBUG] shown 2")) {
		t.Fatalf("enabled channel output missing: %q", buf.String())
	}
}
