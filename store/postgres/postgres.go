package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/juju/errors"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/warriorguo/flowedit/store"
	"github.com/warriorguo/flowedit/types"
)

var (
	_ store.Store = &pgStore{}
)

const (
	defaultPort    = 5432
	defaultSSLMode = "disable"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string // disable, require, verify-ca, verify-full
}

func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     defaultPort,
		User:     "postgres",
		Password: "postgres",
		Database: "flowedit",
		SSLMode:  defaultSSLMode,
	}
}

// ConfigFromOptions fills the unset connection settings with their defaults.
func ConfigFromOptions(o *types.PostgresConfig) *Config {
	config := DefaultConfig()
	if o == nil {
		return config
	}
	if o.Host != "" {
		config.Host = o.Host
	}
	if o.Port != 0 {
		config.Port = o.Port
	}
	if o.User != "" {
		config.User = o.User
	}
	config.Password = o.Password
	if o.Database != "" {
		config.Database = o.Database
	}
	if o.SSLMode != "" {
		config.SSLMode = o.SSLMode
	}
	return config
}

/**
 * pgStore keeps one row per slot, the slot being prefix + key.
 * A write is a single upsert, so readers see the old record or the new one.
 */
type pgStore struct {
	db *sql.DB
}

func NewPostgresStore(config *Config) (store.Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}

	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, errors.Annotatef(err, "open postgres %s:%d", config.Host, config.Port)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Annotatef(err, "ping postgres %s:%d", config.Host, config.Port)
	}

	s, err := NewPostgresStoreWithDB(db)
	if err != nil {
		db.Close()
		return nil, errors.Trace(err)
	}
	log.Debugf("autosave store on postgres %s:%d/%s", config.Host, config.Port, config.Database)
	return s, nil
}

func NewPostgresStoreWithDB(db *sql.DB) (store.Store, error) {
	if db == nil {
		return nil, errors.NotValidf("nil db")
	}

	s := &pgStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, errors.Trace(err)
	}
	return s, nil
}

func (p *pgStore) migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS workflow_autosave (
			slot     TEXT PRIMARY KEY,
			record   BYTEA NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return errors.Annotatef(err, "create table workflow_autosave")
}

func slot(prefix, key string) string {
	return prefix + key
}

func (p *pgStore) Get(ctx context.Context, prefix, key string) ([]byte, error) {
	var record []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT record FROM workflow_autosave WHERE slot = $1`, slot(prefix, key)).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "get %s", slot(prefix, key))
	}
	return record, nil
}

func (p *pgStore) Set(ctx context.Context, prefix, key string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO workflow_autosave (slot, record, saved_at) VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET record = EXCLUDED.record, saved_at = EXCLUDED.saved_at`,
		slot(prefix, key), value)
	return errors.Annotatef(err, "set %s", slot(prefix, key))
}

func (p *pgStore) Remove(ctx context.Context, prefix, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM workflow_autosave WHERE slot = $1`, slot(prefix, key))
	return errors.Annotatef(err, "remove %s", slot(prefix, key))
}

func (p *pgStore) Close() error {
	return p.db.Close()
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

var sslModes = map[string]bool{
	"disable":     true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// Validate rejects incomplete settings, an empty sslmode becomes disable.
func (c *Config) Validate() error {
	switch {
	case c.Host == "":
		return errors.NotValidf("empty host")
	case c.Port <= 0 || c.Port > 65535:
		return errors.NotValidf("port %d", c.Port)
	case c.User == "":
		return errors.NotValidf("empty user")
	case c.Database == "":
		return errors.NotValidf("empty database")
	}
	if c.SSLMode == "" {
		c.SSLMode = defaultSSLMode
	}
	if !sslModes[c.SSLMode] {
		return errors.NotValidf("sslmode %s", c.SSLMode)
	}
	return nil
}

/**
 * ParseDSN reads "host=localhost port=5432 user=postgres dbname=flowedit"
 * style strings. Keys left out keep their defaults, unknown keys are ignored.
 */
func ParseDSN(dsn string) (*Config, error) {
	config := DefaultConfig()
	for _, part := range strings.Fields(dsn) {
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch name {
		case "host":
			config.Host = value
		case "port":
			port, err := cast.ToIntE(value)
			if err != nil {
				return nil, errors.NotValidf("port %q", value)
			}
			config.Port = port
		case "user":
			config.User = value
		case "password":
			config.Password = value
		case "dbname":
			config.Database = value
		case "sslmode":
			config.SSLMode = value
		}
	}
	return config, errors.Trace(config.Validate())
}
