package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestEnvParsing(t *testing.T) {
	t.Setenv("NAV_TEST_INT", "42")
	t.Setenv("NAV_TEST_BAD_INT", "forty")
	t.Setenv("NAV_TEST_BOOL", "on")
	t.Setenv("NAV_TEST_SECS", "30")
	t.Setenv("NAV_TEST_DUR", "2m")
	t.Setenv("NAV_TEST_LIST", " a, ,b ")
	t.Setenv("NAV_TEST_BLANK", "   ")

	if got := Int("NAV_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("Int: got=%d", got)
	}
	if got := Int("NAV_TEST_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int fallback: got=%d", got)
	}
	if got := Int64("NAV_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("Int64: got=%d", got)
	}
	if !Bool("NAV_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: expected true")
	}
	if got := Duration("NAV_TEST_SECS", time.Second, nil); got != 30*time.Second {
		t.Fatalf("Duration secs: got=%s", got)
	}
	if got := Duration("NAV_TEST_DUR", time.Second, nil); got != 2*time.Minute {
		t.Fatalf("Duration: got=%s", got)
	}
	if got := List("NAV_TEST_LIST", nil, nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List: got=%v", got)
	}
	if got := String("NAV_TEST_BLANK", "def", nil); got != "def" {
		t.Fatalf("String blank: got=%q", got)
	}
	if got := String("NAV_TEST_UNSET_FOR_SURE", "def", nil); got != "def" {
		t.Fatalf("String unset: got=%q", got)
	}
}
