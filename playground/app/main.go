package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/a-peyrard/singlet"
	"github.com/a-peyrard/singlet/config"
	"github.com/a-peyrard/singlet/playground/app/heartbeat"
	"github.com/a-peyrard/singlet/playground/app/motor"
	"github.com/a-peyrard/singlet/runner"
	"github.com/rs/zerolog"

	appconfig "github.com/a-peyrard/singlet/playground/app/config"
)

func newLogger() (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if levelFromEnv := os.Getenv("LOG_LEVEL"); levelFromEnv != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(levelFromEnv))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %s: %w", levelFromEnv, err)
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to build logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collection := singlet.NewCollection(singlet.WithLogger(logger))
	singlet.RegisterInstance(collection, logger)
	config.RegisterConfig[appconfig.Config](collection, config.WithEnvPrefix("PG"), config.WithLogger(logger))
	motor.InstallProviders(collection)
	singlet.Register(collection, func(p *singlet.Provider) (*heartbeat.Heartbeat, error) {
		logger, err := singlet.Resolve[zerolog.Logger](p)
		if err != nil {
			return nil, err
		}
		return heartbeat.New(2*time.Second, logger), nil
	})

	provider := collection.Build()
	logger.Info().Msgf("here is what we have in store before driving:\n%s", provider.Describe())

	car := singlet.MustResolve[*motor.Car](provider)
	car.Drive()

	beat := singlet.MustResolve[*heartbeat.Heartbeat](provider)
	if err := runner.RunAll(ctx, beat); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("failed to run the playground")
	}

	logger.Info().Msgf("here is what we have in store at the end:\n%s", provider.Describe())
	logger.Info().Msg("bye.")
}
