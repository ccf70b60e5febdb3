package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilPointer is returned when Load receives a nil destination.
var ErrNilPointer = errors.New("config: nil pointer provided")

// ErrParsingConfig is returned when environment variables cannot be parsed
// into the destination struct.
var ErrParsingConfig = errors.New("config: failed to parse environment variables")

var loadDotEnv sync.Once

// Load fills cfg from environment variables using `env` struct tags. A .env
// file in the working directory is loaded once per process if present;
// missing files are fine.
//
//	type OracleConfig struct {
//	    Endpoint string        `env:"ORACLE_ENDPOINT,required"`
//	    Timeout  time.Duration `env:"ORACLE_REQUEST_TIMEOUT" envDefault:"20s"`
//	}
//
//	var cfg OracleConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	loadDotEnv.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure, for wiring done at startup where
// a missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
