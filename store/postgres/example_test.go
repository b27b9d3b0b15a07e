package postgres_test

import (
	"context"
	"fmt"
	"log"

	"github.com/warriorguo/flowedit/runtime"
	"github.com/warriorguo/flowedit/store/postgres"
	"github.com/warriorguo/flowedit/types"
)

// Example_basicUsage demonstrates persisting the editor autosave into PostgreSQL
func Example_basicUsage() {
	config := postgres.DefaultConfig()
	config.Host = "localhost"
	config.Port = 5432
	config.User = "postgres"
	config.Password = "postgres"
	config.Database = "flowedit"

	store, err := postgres.NewPostgresStore(config)
	if err != nil {
		log.Fatal(err)
	}

	editor := runtime.NewEditor(store, types.NewEditorOptions())
	defer editor.Close(context.Background())

	if saved := editor.LoadSaved(context.Background()); saved != nil {
		fmt.Printf("found a workflow saved at %s\n", saved.Timestamp)
	}
}

// Example_withDSN demonstrates usage with DSN string
func Example_withDSN() {
	dsn := "host=localhost port=5432 user=postgres password=postgres dbname=flowedit sslmode=disable"
	config, err := postgres.ParseDSN(dsn)
	if err != nil {
		log.Fatal(err)
	}

	store, err := postgres.NewPostgresStore(config)
	if err != nil {
		log.Fatal(err)
	}

	editor := runtime.NewEditor(store, types.NewEditorOptions())
	defer editor.Close(context.Background())
}
