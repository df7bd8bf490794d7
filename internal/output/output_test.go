package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*bytes.Buffer)
		want string
	}{
		{"success", func(b *bytes.Buffer) { Success(b, "built %d apps", 2) }, "built 2 apps"},
		{"error", func(b *bytes.Buffer) { Error(b, "boom") }, "Error: boom"},
		{"warning", func(b *bytes.Buffer) { Warning(b, "careful") }, "Warning: careful"},
		{"info", func(b *bytes.Buffer) { Info(b, "plain %s", "text") }, "plain text"},
		{"step", func(b *bytes.Buffer) { Step(b, "Uploading %q", "orders") }, `==> Uploading "orders"`},
		{"hint", func(b *bytes.Buffer) { Hint(b, "run setup") }, "run setup"},
		{"title", func(b *bytes.Buffer) { Title(b, "Doctor") }, "Doctor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fn(&buf)
			got := buf.String()
			if !strings.Contains(got, tt.want) {
				t.Errorf("output = %q, want it to contain %q", got, tt.want)
			}
			if !strings.HasSuffix(got, "\n") {
				t.Errorf("output %q should end with a newline", got)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	if !strings.Contains(Status(true, false), "OK") {
		t.Error("Status(true) should contain OK")
	}
	if !strings.Contains(Status(false, true), "WARN") {
		t.Error("Status(false, true) should contain WARN")
	}
	if !strings.Contains(Status(false, false), "MISS") {
		t.Error("Status(false, false) should contain MISS")
	}
}

func TestFail(t *testing.T) {
	if !strings.Contains(Fail(), "FAIL") {
		t.Error("Fail() should contain FAIL")
	}
}
