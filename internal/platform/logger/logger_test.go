package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	if got := sanitizeValue("refresh_token", "abc"); got != "[REDACTED]" {
		t.Fatalf("token: got=%v", got)
	}
	got, _ := sanitizeValue("user_id", "42").(string)
	if !strings.HasPrefix(got, "hash:") || len(got) != len("hash:")+12 {
		t.Fatalf("user_id: got=%q", got)
	}
	if got := sanitizeValue("key", "editsettings"); got != "editsettings" {
		t.Fatalf("plain value changed: got=%v", got)
	}
}

func TestStripSessionParams(t *testing.T) {
	in := "https://lms.test/course/view.php?id=2&sesskey=s3cr3t"
	got := sanitizeValue("url", in).(string)
	if strings.Contains(got, "s3cr3t") {
		t.Fatalf("sesskey leaked: %s", got)
	}
	if !strings.Contains(got, "id=2") {
		t.Fatalf("other params lost: %s", got)
	}
	if plain := "https://lms.test/course/view.php?id=2"; sanitizeValue("action", plain) != plain {
		t.Fatalf("url without sesskey should pass through")
	}
}
