package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

// String returns the trimmed value of name, or def when unset or blank.
func String(name, def string, log *logger.Logger) string {
	v, ok := lookup(name)
	if !ok {
		usingDefault(log, name, def)
		return def
	}
	found(log, name, v)
	return v
}

func Int(name string, def int, log *logger.Logger) int {
	v, ok := lookup(name)
	if !ok {
		usingDefault(log, name, def)
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		unparsable(log, name, v, def, err)
		return def
	}
	found(log, name, i)
	return i
}

func Int64(name string, def int64, log *logger.Logger) int64 {
	v, ok := lookup(name)
	if !ok {
		usingDefault(log, name, def)
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		unparsable(log, name, v, def, err)
		return def
	}
	found(log, name, i)
	return i
}

// Bool understands 1/true/yes/on and 0/false/no/off.
func Bool(name string, def bool, log *logger.Logger) bool {
	v, ok := lookup(name)
	if !ok {
		usingDefault(log, name, def)
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		found(log, name, true)
		return true
	case "0", "false", "no", "off":
		found(log, name, false)
		return false
	}
	unparsable(log, name, v, def, nil)
	return def
}

// Duration accepts Go duration strings ("90s") or a bare number of seconds.
func Duration(name string, def time.Duration, log *logger.Logger) time.Duration {
	v, ok := lookup(name)
	if !ok {
		usingDefault(log, name, def)
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		d := time.Duration(secs) * time.Second
		found(log, name, d)
		return d
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		unparsable(log, name, v, def, err)
		return def
	}
	found(log, name, d)
	return d
}

// List splits a comma separated value, dropping blanks.
func List(name string, def []string, log *logger.Logger) []string {
	v, ok := lookup(name)
	if !ok {
		usingDefault(log, name, def)
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	found(log, name, out)
	return out
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func sensitive(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "password") || strings.Contains(n, "secret") || strings.Contains(n, "token") || strings.Contains(n, "headers")
}

func usingDefault(log *logger.Logger, name string, def interface{}) {
	if log == nil {
		return
	}
	if sensitive(name) {
		def = "[REDACTED]"
	}
	log.Debug("Environment variable not found, using default", "env_var", name, "default", def)
}

func found(log *logger.Logger, name string, val interface{}) {
	if log == nil {
		return
	}
	if sensitive(name) {
		val = "[REDACTED]"
	}
	log.Debug("Environment variable found, using it", "env_var", name, "value", val)
}

func unparsable(log *logger.Logger, name, raw string, def interface{}, err error) {
	if log == nil {
		return
	}
	if sensitive(name) {
		raw = "[REDACTED]"
	}
	log.Warn("Environment variable could not be parsed, using default", "env_var", name, "provided", raw, "default", def, "error", err)
}
