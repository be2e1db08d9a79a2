package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/cliqlang/cliq/log"
)

// logFormat configures the logger format as a side effect of parsing
// via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// Kong calls this while parsing the --log-format flag, early enough to
// affect error messages produced during parsing itself.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// Kong calls this while parsing the --log-level flag, early enough to
// affect error messages produced during parsing itself.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"json"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to extract
// and apply logger configuration before kong begins parsing. This keeps
// the logger configured properly regardless of flag position.
//
// The logFormat and logLevel types configure the logger as their flags
// are parsed, but boolean flags don't go through TextUnmarshaler, so
// this pre-scan catches --log-pretty and --log-caller as well.
func (f *logConfig) scan(args []string) {
	const (
		logPrefix   = "--log-"
		noLogPrefix = "--no-log-"
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		hasLogPrefix := len(arg) >= len(logPrefix) &&
			arg[:len(logPrefix)] == logPrefix

		hasNoLogPrefix := len(arg) >= len(noLogPrefix) &&
			arg[:len(noLogPrefix)] == noLogPrefix

		if !hasLogPrefix && !hasNoLogPrefix {
			continue
		}

		// Split "--log-name=value" into name and value.
		var (
			name, value string
			assigned    bool
		)

		prefixLen := len(logPrefix)
		if hasNoLogPrefix {
			prefixLen = len(noLogPrefix)
		}

		for j := prefixLen; j < len(arg); j++ {
			if arg[j] == '=' {
				name, value = arg[:j], arg[j+1:]
				assigned = true

				break
			}
		}

		if name == "" {
			name = arg
		}

		// takeValue consumes the next argument as the flag value when it
		// was not assigned with '='.
		takeValue := func() string {
			if !assigned && i+1 < len(args) && len(args[i+1]) > 0 &&
				args[i+1][0] != '-' {
				v := args[i+1]
				i++

				return v
			}

			return value
		}

		// setBool applies an optionally negated boolean flag value.
		setBool := func(apply func(bool), negate bool) {
			v := true

			if assigned {
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					return
				}

				v = parsed
			}

			if negate {
				v = !v
			}

			apply(v)
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(takeValue()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(takeValue()))

		case "--log-pretty":
			setBool(func(v bool) {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}, false)

		case "--no-log-pretty":
			setBool(func(v bool) {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}, true)

		case "--log-caller":
			setBool(func(v bool) {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}, false)

		case "--no-log-caller":
			setBool(func(v bool) {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}, true)
		}
	}
}
