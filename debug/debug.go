package debug

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/signadot/tony-format/go-keypath/encode"
	"github.com/signadot/tony-format/go-keypath/ir"
)

type debug struct {
	Resolve bool
	Cursor  bool
	Map     bool
}

var (
	d   *debug
	log *slog.Logger
)

func init() {
	d = &debug{}
	d.Resolve = boolEnv("KEYPATH_DEBUG_RESOLVE")
	d.Cursor = boolEnv("KEYPATH_DEBUG_CURSOR")
	d.Map = boolEnv("KEYPATH_DEBUG_MAP")
	level := slog.LevelInfo
	if d.Resolve || d.Cursor || d.Map {
		level = slog.LevelDebug
	}
	log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Cursor() bool {
	return d.Cursor
}
func Map() bool {
	return d.Map
}

// Logger returns the debug logger. It writes to stderr and is enabled at
// debug level when any switch is on.
func Logger() *slog.Logger {
	return log
}

// SetLogger replaces the debug logger, typically in tests.
func SetLogger(l *slog.Logger) {
	log = l
}

// Logf logs a formatted debug message. *ir.Node arguments are rendered as
// compact JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		x, ok := args[i].(*ir.Node)
		if !ok {
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.JSON(x, buf); err != nil {
			args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
			continue
		}
		args[i] = buf.String()
	}
	log.Debug(fmt.Sprintf(msg, args...))
}
