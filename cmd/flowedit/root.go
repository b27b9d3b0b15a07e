package main

import (
	"io"
	"os"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/warriorguo/flowedit/types"
)

// cliOptions holds the global flags, defaults come from FLOWEDIT_* variables.
type cliOptions struct {
	verbose    bool
	configPath string
	storeKind  string
	storageKey string

	redisAddr     string
	redisPassword string
	redisDB       int

	pgHost     string
	pgPort     int
	pgUser     string
	pgPassword string
	pgDatabase string
	pgSSLMode  string
}

func envOr(key, def string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return def
}

func newRootCmd(out io.Writer) *cobra.Command {
	o := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "flowedit",
		Short:         "Workflow editor tools",
		Long:          "Validate workflow files and inspect the autosaved workflow of the editor",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&o.configPath, "config", envOr("FLOWEDIT_CONFIG", ""), "Path to a YAML options file")
	flags.StringVar(&o.storeKind, "store", envOr("FLOWEDIT_STORE", ""), "Store backend: mem, postgres or redis")
	flags.StringVar(&o.storageKey, "key", envOr("FLOWEDIT_KEY", ""), "Storage key of the autosave record")
	flags.StringVar(&o.redisAddr, "redis-addr", envOr("FLOWEDIT_REDIS_ADDR", "localhost:6379"), "Redis address")
	flags.StringVar(&o.redisPassword, "redis-password", envOr("FLOWEDIT_REDIS_PASSWORD", ""), "Redis password")
	flags.IntVar(&o.redisDB, "redis-db", cast.ToInt(envOr("FLOWEDIT_REDIS_DB", "0")), "Redis database")
	flags.StringVar(&o.pgHost, "pg-host", envOr("FLOWEDIT_PG_HOST", "localhost"), "PostgreSQL host")
	flags.IntVar(&o.pgPort, "pg-port", cast.ToInt(envOr("FLOWEDIT_PG_PORT", "5432")), "PostgreSQL port")
	flags.StringVar(&o.pgUser, "pg-user", envOr("FLOWEDIT_PG_USER", "postgres"), "PostgreSQL user")
	flags.StringVar(&o.pgPassword, "pg-password", envOr("FLOWEDIT_PG_PASSWORD", ""), "PostgreSQL password")
	flags.StringVar(&o.pgDatabase, "pg-database", envOr("FLOWEDIT_PG_DATABASE", "flowedit"), "PostgreSQL database")
	flags.StringVar(&o.pgSSLMode, "pg-sslmode", envOr("FLOWEDIT_PG_SSLMODE", "disable"), "PostgreSQL sslmode")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "validate <file>",
			Short: "Validate a workflow file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runValidate(cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "fields <file> <nodeId>",
			Short: "List the form fields available to a node",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFields(cmd.OutOrStdout(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "render <file>",
			Short: "Render a workflow file as Graphviz DOT",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRender(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "inspect",
			Short: "Load and validate the autosaved workflow",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts, err := o.editorOptions()
				if err != nil {
					return errors.Trace(err)
				}
				return runInspect(cmd.Context(), cmd.OutOrStdout(), opts)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Discard the autosaved workflow",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts, err := o.editorOptions()
				if err != nil {
					return errors.Trace(err)
				}
				return runClear(cmd.Context(), cmd.OutOrStdout(), opts)
			},
		},
	)
	return rootCmd
}

/**
 * editorOptions resolves the store: an options file first, then --store.
 * The CLI drives the editor itself, so the background loop is off.
 */
func (o *cliOptions) editorOptions() ([]types.EditorOption, error) {
	opts := []types.EditorOption{types.DisableAutoStart(), types.DisableTaskRunAsync()}

	if o.configPath != "" {
		fileOpts, err := types.LoadOptionsFile(o.configPath)
		if err != nil {
			return nil, errors.Trace(err)
		}
		opts = append(opts, fileOpts...)
	} else {
		switch o.storeKind {
		case "", "mem":
			opts = append(opts, types.EnableMemStore())
		case "redis":
			opts = append(opts, types.WithRedisConfig(&types.RedisConfig{
				Addr:     o.redisAddr,
				Password: o.redisPassword,
				DB:       o.redisDB,
			}))
		case "postgres":
			opts = append(opts, types.WithPostgresConfig(&types.PostgresConfig{
				Host:     o.pgHost,
				Port:     o.pgPort,
				User:     o.pgUser,
				Password: o.pgPassword,
				Database: o.pgDatabase,
				SSLMode:  o.pgSSLMode,
			}))
		default:
			return nil, errors.NotSupportedf("store %q", o.storeKind)
		}
	}

	if o.storageKey != "" {
		opts = append(opts, types.SetStorageKey(o.storageKey))
	}
	return opts, nil
}
