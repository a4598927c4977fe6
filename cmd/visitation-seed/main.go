// Command visitation-seed loads facilities and test accounts into MongoDB.
//
// Usage:
//
//	visitation-seed [-file fixtures.yaml]
//
// Without -file the fixtures bundled with the binary are used.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/visitlink/visitation-api/internal/infrastructure/config"
	mongodb "github.com/visitlink/visitation-api/internal/infrastructure/db/mongo"
	"github.com/visitlink/visitation-api/internal/seed"
	"github.com/visitlink/visitation-api/pkg/logger"
)

func main() {
	file := flag.String("file", "", "YAML fixtures to load instead of the bundled set")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *file); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Service: "visitation-seed",
	})

	fixtures, err := loadFixtures(file)
	if err != nil {
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "visitation-seed",
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	facilities := mongodb.NewFacilityRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, facilities); err != nil {
		return err
	}

	res, err := seed.NewSeeder(facilities, users, log).Apply(ctx, fixtures)
	if err != nil {
		return err
	}

	log.Info().
		Int("facilities_created", res.FacilitiesCreated).
		Int("facilities_skipped", res.FacilitiesSkipped).
		Int("users_created", res.UsersCreated).
		Int("users_skipped", res.UsersSkipped).
		Msg("seed complete")
	return nil
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return seed.Parse(f)
}
