// Package flowedit is the core of a visual workflow editor: it validates
// the node/edge graph built on the canvas and autosaves valid graphs into
// a key-value store.
package flowedit

import (
	"github.com/juju/errors"
	"github.com/warriorguo/flowedit/runtime"
	"github.com/warriorguo/flowedit/store"
	"github.com/warriorguo/flowedit/store/mem"
	"github.com/warriorguo/flowedit/store/postgres"
	"github.com/warriorguo/flowedit/store/redis"
	"github.com/warriorguo/flowedit/types"
)

// NewEditor creates a new editor with the given options
func NewEditor(opts ...types.EditorOption) (types.Editor, error) {
	options := types.NewEditorOptions()
	for _, opt := range opts {
		opt(options)
	}

	s, err := NewStore(options)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return runtime.NewEditor(s, options), nil
}

// NewStore picks the backend: PostgresConfig, then RedisConfig, then memory.
func NewStore(options *types.EditorOptions) (store.Store, error) {
	switch {
	case options.PostgresConfig != nil:
		s, err := postgres.NewPostgresStore(postgres.ConfigFromOptions(options.PostgresConfig))
		if err != nil {
			return nil, errors.Annotatef(err, "failed to create PostgreSQL store")
		}
		return s, nil

	case options.RedisConfig != nil:
		s, err := redis.NewRedisStore(&redis.Config{
			Addr:      options.RedisConfig.Addr,
			Password:  options.RedisConfig.Password,
			DB:        options.RedisConfig.DB,
			KeyPrefix: options.RedisConfig.KeyPrefix,
		})
		if err != nil {
			return nil, errors.Annotatef(err, "failed to create Redis store")
		}
		return s, nil
	}

	// Default to mem store if not specified
	return mem.NewMemStore(), nil
}
