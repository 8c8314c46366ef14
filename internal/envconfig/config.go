// Package envconfig reads runtime configuration from LINOP_* environment
// variables.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var (
	// Device selects the array backend: "cpu" (default) or "webgpu".
	Device = String("LINOP_DEVICE")
	// NumThreads caps CPU kernel workers. 0 means one per CPU.
	NumThreads = Uint("LINOP_NUM_THREADS", 0)
)

// LogLevel maps LINOP_DEBUG to a slog level. A boolean true selects Debug;
// an integer n selects level -4n.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("LINOP_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var returns an environment variable stripped of surrounding quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// String returns a getter for a string variable.
func String(key string) func() string {
	return func() string {
		return Var(key)
	}
}

// Uint returns a getter for an unsigned variable with a default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"LINOP_DEBUG":       {"LINOP_DEBUG", LogLevel(), "Show additional debug information (e.g. LINOP_DEBUG=1)"},
		"LINOP_DEVICE":      {"LINOP_DEVICE", Device(), "Array backend: cpu or webgpu (default: cpu)"},
		"LINOP_NUM_THREADS": {"LINOP_NUM_THREADS", NumThreads(), "Maximum CPU kernel workers (default: one per CPU)"},
	}
}

// Values returns every configuration value formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
