package types

import (
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// optionsFile is the YAML layout accepted by LoadOptionsFile.
// Durations may be written as "300ms" or as plain milliseconds.
type optionsFile struct {
	ValidationDebounce any             `yaml:"validation_debounce"`
	SaveDebounce       any             `yaml:"save_debounce"`
	StorageKey         string          `yaml:"storage_key"`
	AutoStart          *bool           `yaml:"auto_start"`
	Store              string          `yaml:"store"`
	Postgres           *PostgresConfig `yaml:"postgres"`
	Redis              *RedisConfig    `yaml:"redis"`
}

// LoadOptionsFile reads a YAML options file and returns the options it sets.
func LoadOptionsFile(path string) ([]EditorOption, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "read options file %s", path)
	}
	return ParseOptions(b)
}

func ParseOptions(b []byte) ([]EditorOption, error) {
	f := &optionsFile{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, errors.Annotatef(err, "parse options")
	}

	opts := make([]EditorOption, 0)
	if f.ValidationDebounce != nil {
		d, err := parseDuration(f.ValidationDebounce)
		if err != nil {
			return nil, errors.Annotatef(err, "validation_debounce")
		}
		opts = append(opts, SetValidationDebounce(d))
	}
	if f.SaveDebounce != nil {
		d, err := parseDuration(f.SaveDebounce)
		if err != nil {
			return nil, errors.Annotatef(err, "save_debounce")
		}
		opts = append(opts, SetSaveDebounce(d))
	}
	if f.StorageKey != "" {
		opts = append(opts, SetStorageKey(f.StorageKey))
	}
	if f.AutoStart != nil && !*f.AutoStart {
		opts = append(opts, DisableAutoStart())
	}

	switch f.Store {
	case "", "mem":
		if f.Store == "mem" {
			opts = append(opts, EnableMemStore())
		}
	case "postgres":
		if f.Postgres == nil {
			return nil, errors.NotValidf("store postgres without postgres section")
		}
		opts = append(opts, WithPostgresConfig(f.Postgres))
	case "redis":
		if f.Redis == nil {
			return nil, errors.NotValidf("store redis without redis section")
		}
		opts = append(opts, WithRedisConfig(f.Redis))
	default:
		return nil, errors.NotSupportedf("store %q", f.Store)
	}
	return opts, nil
}

func parseDuration(v any) (d time.Duration, err error) {
	switch v := v.(type) {
	case int, int64, uint64, float64:
		return time.Duration(cast.ToInt64(v)) * time.Millisecond, nil
	}
	d, err = cast.ToDurationE(v)
	return d, errors.Trace(err)
}
