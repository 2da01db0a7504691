package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"brillante/cmd"
	"brillante/internal/adapters/out/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/gommon/log"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s up|down|status\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := sql.Open("pgx", configs.DSN())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	switch flag.Arg(0) {
	case "up":
		err = postgres.RunMigrations(ctx, db)
	case "down":
		err = postgres.RollbackMigration(ctx, db)
	case "status":
		err = postgres.MigrationStatus(ctx, db)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Migration %s failed: %v", flag.Arg(0), err)
	}
}
