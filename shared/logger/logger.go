package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"spacy/config"
	"spacy/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the global logger. Production writes JSON lines tagged with the app name,
// every other environment gets the colored console writer.
func InitLogger(config *config.Config) {
	InitLoggerWithOutput(config, os.Stdout)
}

func InitLoggerWithOutput(config *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var writer io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if strings.EqualFold(config.Server.Env, constant.ServerEnvProduction) {
		writer = out
	}

	ctx := zerolog.New(writer).With().Timestamp()
	if config.App.Name != "" {
		ctx = ctx.Str("app", config.App.Name)
	}

	log.Logger = ctx.Logger()
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
