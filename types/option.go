package types

import (
	"context"
	"time"

	"github.com/mcuadros/go-defaults"
)

const DefaultStorageKey = "workflow-autosave"

func NewEditorOptions() *EditorOptions {
	opts := &EditorOptions{Ctx: context.Background(), Clock: time.Now}
	defaults.SetDefaults(opts)
	return opts
}

type EditorOptions struct {
	Ctx context.Context
	/**
	 * default: time.Now, tests replace it to drive the debounce timers.
	 */
	Clock func() time.Time
	/**
	 * default: 300ms, quiet period after the last graph mutation
	 * before the workflow is validated.
	 */
	ValidationDebounce time.Duration `default:"300ms"`
	/**
	 * default: 2s, quiet period of a valid, changed graph before it is written.
	 */
	SaveDebounce time.Duration `default:"2s"`
	/**
	 * default: workflow-autosave, the single key the record is stored under.
	 */
	StorageKey string `default:"workflow-autosave"`
	/**
	 * default: true, can set it to false and *important*
	 * caller should call Editor.RunOnce() looply.
	 */
	AutoStart bool `default:"true"`
	/**
	 * default: 20ms, how often the background loop checks for due timers
	 * when AutoStart is true.
	 */
	TickInterval time.Duration `default:"20ms"`
	/**
	 * default: true, only set it to false when doing debugging or testing.
	 * When true, fired timers run on a single background worker, otherwise
	 * they run inline in RunOnce.
	 */
	TaskRunAsync bool `default:"true"`
	/**
	 * default: false, only set it to true when doing testing or developing.
	 */
	MemStore bool `default:"false"`

	// PostgresConfig takes precedence over RedisConfig, RedisConfig over MemStore.
	PostgresConfig *PostgresConfig
	RedisConfig    *RedisConfig
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"` // disable, require, verify-ca, verify-full
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type EditorOption func(*EditorOptions)

func WithContext(ctx context.Context) EditorOption {
	return func(opts *EditorOptions) {
		opts.Ctx = ctx
	}
}

func WithClock(clock func() time.Time) EditorOption {
	return func(opts *EditorOptions) {
		opts.Clock = clock
	}
}

func SetValidationDebounce(d time.Duration) EditorOption {
	return func(opts *EditorOptions) {
		opts.ValidationDebounce = d
	}
}

func SetSaveDebounce(d time.Duration) EditorOption {
	return func(opts *EditorOptions) {
		opts.SaveDebounce = d
	}
}

func SetStorageKey(key string) EditorOption {
	return func(opts *EditorOptions) {
		opts.StorageKey = key
	}
}

func DisableAutoStart() EditorOption {
	return func(opts *EditorOptions) {
		opts.AutoStart = false
	}
}

func DisableTaskRunAsync() EditorOption {
	return func(opts *EditorOptions) {
		opts.TaskRunAsync = false
	}
}

func EnableMemStore() EditorOption {
	return func(opts *EditorOptions) {
		opts.MemStore = true
	}
}

// WithPostgresConfig configures the editor to persist into PostgreSQL
func WithPostgresConfig(config *PostgresConfig) EditorOption {
	return func(opts *EditorOptions) {
		opts.PostgresConfig = config
	}
}

// WithRedisConfig configures the editor to persist into Redis
func WithRedisConfig(config *RedisConfig) EditorOption {
	return func(opts *EditorOptions) {
		opts.RedisConfig = config
	}
}
