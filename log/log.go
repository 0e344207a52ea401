// Package log is a small configurable logger built on zerolog.
//
// Configuration is read once, from a toml file named projlog.toml in the
// working directory or from the path in the PROJ_LOGCONFIG environment
// variable. All fields are optional:
//
//	# debug/info/warn/error/fatal/panic
//	level = "info"
//
//	# console, console_no_color or json
//	formatter = "console"
//
//	# print source file and line
//	caller = false
//
//	# per-module override
//	[eventlog]
//	level = "debug"
package log

import (
	"os"
	"strings"
	"sync"

	colorable "github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	confEnvPrefix       = "PROJ"
	confFilePathKey     = "LOGCONFIG"
	defaultConfFileName = "projlog"
)

var (
	initOnce   sync.Once
	baseLogger = zerolog.New(os.Stderr)
	baseLevel  = zerolog.InfoLevel
	conf       = viper.New()
)

// Logger is a module-scoped zerolog logger.
type Logger struct {
	*zerolog.Logger
	name  string
	level zerolog.Level
}

func initLog() {
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.SetEnvPrefix(confEnvPrefix)
	conf.AutomaticEnv()
	conf.SetConfigType("toml")
	conf.SetConfigName(defaultConfFileName)
	conf.AddConfigPath(".")
	if path := conf.GetString(confFilePathKey); path != "" {
		conf.SetConfigFile(path)
	}
	if err := conf.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			baseLogger.Error().Err(err).Msg("failed to read log config file")
		}
	}

	switch strings.ToLower(conf.GetString("formatter")) {
	case "console":
		baseLogger = baseLogger.Output(zerolog.ConsoleWriter{
			Out:        colorable.NewColorable(os.Stderr),
			TimeFormat: zerolog.TimeFieldFormat,
		})
	case "console_no_color":
		baseLogger = baseLogger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    true,
			TimeFormat: zerolog.TimeFieldFormat,
		})
	case "", "json":
	default:
		baseLogger.Warn().Str("formatter", conf.GetString("formatter")).
			Msg("unknown formatter, using json")
	}

	if conf.GetBool("caller") {
		baseLogger = baseLogger.With().Caller().Logger()
	}

	if level := conf.GetString("level"); level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			baseLogger.Warn().Err(err).Msg("failed to parse log level, using info")
			parsed = zerolog.InfoLevel
		}
		baseLevel = parsed
	}
	baseLogger = baseLogger.With().Timestamp().Logger().Level(baseLevel)
}

// NewLogger returns a logger tagged with the given module name. Per-module
// level overrides from the config file are applied here.
func NewLogger(module string) *Logger {
	initOnce.Do(initLog)

	zl := baseLogger.With().Str("module", module).Logger()
	level := baseLevel
	if sub := conf.Sub(module); sub != nil {
		if l := sub.GetString("level"); l != "" {
			parsed, err := zerolog.ParseLevel(l)
			if err == nil {
				level = parsed
				zl = zl.Level(level)
			}
		}
	}
	return &Logger{Logger: &zl, name: module, level: level}
}

// Default returns the base logger without a module tag.
func Default() *Logger {
	initOnce.Do(initLog)
	return &Logger{Logger: &baseLogger, level: baseLevel}
}

// IsDebugEnabled helps avoid building expensive debug statements that would
// be discarded.
func (l *Logger) IsDebugEnabled() bool {
	return l.level <= zerolog.DebugLevel
}

// Level returns the logger's level name.
func (l *Logger) Level() string {
	return l.level.String()
}
