package nutrikit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mealmind/nutrikit/pkg/config"
	"github.com/mealmind/nutrikit/pkg/entitlement"
	"github.com/mealmind/nutrikit/pkg/kv"
	"github.com/mealmind/nutrikit/pkg/oracle"
	"github.com/mealmind/nutrikit/pkg/usage"
)

// Config aggregates the environment configuration for the whole state layer.
type Config struct {
	Oracle oracle.Config
	Paddle entitlement.PaddleConfig
	Redis  kv.RedisConfig

	// UseRedis selects the Redis-backed store; off, quota state lives in
	// process memory only.
	UseRedis bool `env:"NUTRIKIT_USE_REDIS" envDefault:"false"`
}

// State is the assembled state layer a host app embeds: entitlement
// resolution, the usage-limit engine and the oracle answer pipeline behind
// one constructor. UI code reads gates and reports events; nothing else
// mutates the underlying records.
type State struct {
	Entitlements *entitlement.Resolver
	Usage        *usage.Service
	Oracle       *oracle.Service
}

// Option configures New.
type Option func(*options)

type options struct {
	log      *slog.Logger
	store    kv.Store
	provider entitlement.Provider
}

// WithLogger sets the logger shared by all components.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithStore overrides the persistence store, bypassing the Redis/memory
// selection from the config.
func WithStore(store kv.Store) Option {
	return func(o *options) {
		if store != nil {
			o.store = store
		}
	}
}

// WithProvider overrides the entitlement provider, bypassing the Paddle
// construction from the config.
func WithProvider(provider entitlement.Provider) Option {
	return func(o *options) {
		if provider != nil {
			o.provider = provider
		}
	}
}

// New assembles the state layer from configuration and resolves the
// entitlement tier. The returned State is ready for gate checks; the tier
// has already settled to free or premium.
func New(ctx context.Context, cfg Config, opts ...Option) (*State, error) {
	o := &options{log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		if cfg.UseRedis {
			client, err := kv.Connect(ctx, cfg.Redis)
			if err != nil {
				return nil, fmt.Errorf("nutrikit: %w", err)
			}
			store = kv.NewRedisStore(client, cfg.Redis.KeyPrefix)
		} else {
			store = kv.NewMemoryStore()
		}
	}

	provider := o.provider
	if provider == nil {
		p, err := entitlement.NewPaddleProvider(cfg.Paddle)
		if err != nil {
			return nil, fmt.Errorf("nutrikit: %w", err)
		}
		provider = p
	}

	resolver := entitlement.NewResolver(provider, entitlement.WithLogger(o.log))
	resolver.Initialize(ctx)

	usageSvc, err := usage.NewService(ctx, store, resolver, usage.WithLogger(o.log))
	if err != nil {
		return nil, fmt.Errorf("nutrikit: %w", err)
	}

	client, err := oracle.NewClient(cfg.Oracle.Endpoint, oracle.WithTimeout(cfg.Oracle.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("nutrikit: %w", err)
	}

	return &State{
		Entitlements: resolver,
		Usage:        usageSvc,
		Oracle:       oracle.NewService(client, oracle.WithLogger(o.log)),
	}, nil
}

// LoadConfig reads the full configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AskOracle is the gate-check-then-increment flow for assistant questions in
// one call: denied questions return ok=false without touching the endpoint,
// allowed ones are answered and the consumed question is committed.
func (s *State) AskOracle(ctx context.Context, question string) (oracle.Answer, bool) {
	if !s.Usage.CanAskOracleQuestion() {
		return oracle.Answer{}, false
	}

	answer := s.Oracle.Ask(ctx, question)
	if err := s.Usage.IncrementOracleQuestion(ctx); err != nil {
		// The gate passed a moment ago; losing the race to the limit
		// still surfaces the answer the user already received.
		return answer, true
	}
	return answer, true
}
