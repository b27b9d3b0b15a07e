package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditorOptions_Defaults(t *testing.T) {
	opts := NewEditorOptions()

	assert.Equal(t, 300*time.Millisecond, opts.ValidationDebounce)
	assert.Equal(t, 2*time.Second, opts.SaveDebounce)
	assert.Equal(t, DefaultStorageKey, opts.StorageKey)
	assert.Equal(t, 20*time.Millisecond, opts.TickInterval)
	assert.True(t, opts.AutoStart)
	assert.True(t, opts.TaskRunAsync)
	assert.False(t, opts.MemStore)
	assert.NotNil(t, opts.Clock)
	assert.NotNil(t, opts.Ctx)
}

func TestWithPostgresConfig(t *testing.T) {
	config := &PostgresConfig{
		Host:     "dbhost",
		Port:     5433,
		User:     "user",
		Password: "pass",
		Database: "db",
		SSLMode:  "require",
	}

	opts := NewEditorOptions()
	opt := WithPostgresConfig(config)
	opt(opts)

	assert.NotNil(t, opts.PostgresConfig)
	assert.Equal(t, "dbhost", opts.PostgresConfig.Host)
	assert.Equal(t, 5433, opts.PostgresConfig.Port)
	assert.Equal(t, "require", opts.PostgresConfig.SSLMode)
}

func TestMultipleOptions(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := NewEditorOptions()

	WithRedisConfig(&RedisConfig{Addr: "localhost:6379"})(opts)
	SetValidationDebounce(time.Second)(opts)
	SetSaveDebounce(5 * time.Second)(opts)
	SetStorageKey("draft")(opts)
	WithClock(func() time.Time { return now })(opts)
	DisableAutoStart()(opts)
	DisableTaskRunAsync()(opts)
	EnableMemStore()(opts)

	assert.Equal(t, "localhost:6379", opts.RedisConfig.Addr)
	assert.Equal(t, time.Second, opts.ValidationDebounce)
	assert.Equal(t, 5*time.Second, opts.SaveDebounce)
	assert.Equal(t, "draft", opts.StorageKey)
	assert.Equal(t, now, opts.Clock())
	assert.False(t, opts.AutoStart)
	assert.False(t, opts.TaskRunAsync)
	assert.True(t, opts.MemStore)
}

func apply(opts []EditorOption) *EditorOptions {
	o := NewEditorOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]byte(`
validation_debounce: 500ms
save_debounce: 3000
storage_key: my-draft
auto_start: false
store: redis
redis:
  addr: redis:6379
  db: 2
  key_prefix: editor
`))
	require.Nil(t, err)

	o := apply(opts)
	assert.Equal(t, 500*time.Millisecond, o.ValidationDebounce)
	assert.Equal(t, 3*time.Second, o.SaveDebounce)
	assert.Equal(t, "my-draft", o.StorageKey)
	assert.False(t, o.AutoStart)
	assert.Equal(t, &RedisConfig{Addr: "redis:6379", DB: 2, KeyPrefix: "editor"}, o.RedisConfig)
}

func TestParseOptions_Errors(t *testing.T) {
	_, err := ParseOptions([]byte("store: postgres\n"))
	assert.NotNil(t, err)

	_, err = ParseOptions([]byte("store: dynamodb\n"))
	assert.NotNil(t, err)

	_, err = ParseOptions([]byte("save_debounce: soon\n"))
	assert.NotNil(t, err)

	_, err = ParseOptions([]byte("store: [\n"))
	assert.NotNil(t, err)
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowedit.yaml")
	require.Nil(t, os.WriteFile(path, []byte("store: postgres\npostgres:\n  host: db\n  port: 5432\n"), 0o600))

	opts, err := LoadOptionsFile(path)
	require.Nil(t, err)
	o := apply(opts)
	assert.Equal(t, "db", o.PostgresConfig.Host)
	assert.Equal(t, 5432, o.PostgresConfig.Port)

	_, err = LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}
