// Command migrate runs one-off data maintenance against the marketplace database.
//
//	migrate [-log-level debug] assign-sellers|seed-hubs|ensure-indexes
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"craftedbyher/cache"
	"craftedbyher/config"
	"craftedbyher/database"
	"craftedbyher/logging"
	"craftedbyher/repository"
	"craftedbyher/services"

	"github.com/rs/zerolog/log"
)

var commands = map[string]func(context.Context, *config.Config) (int, error){
	"assign-sellers": assignSellers,
	"seed-hubs":      seedHubs,
	"ensure-indexes": ensureIndexes,
}

func main() {
	var logLevel string
	var timeout time.Duration
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "overall deadline")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [flags] assign-sellers|seed-hubs|ensure-indexes")
		flag.PrintDefaults()
	}
	flag.Parse()

	run, ok := commands[flag.Arg(0)]
	if flag.NArg() != 1 || !ok {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Configure(logLevel, cfg.LogPretty)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName); err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer database.Disconnect(context.Background())
	database.InitCollections()

	n, err := run(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Int("done", n).Msg("migration failed")
		database.Disconnect(context.Background())
		os.Exit(1)
	}
	log.Info().Str("command", flag.Arg(0)).Int("count", n).Msg("migration finished")
}

func assignSellers(ctx context.Context, _ *config.Config) (int, error) {
	products := services.NewProductService(repository.NewProductRepository(database.ProductCollection), nil, cache.Noop{}, 0)
	return products.AssignSellers(ctx, repository.NewUserRepository(database.UserCollection))
}

func seedHubs(ctx context.Context, cfg *config.Config) (int, error) {
	hubs := services.NewHubService(
		repository.NewHubRepository(database.HubCollection),
		repository.NewHubManagerRepository(database.HubManagerCollection),
		repository.NewUserRepository(database.UserCollection),
		cache.Noop{}, 0, cfg.DefaultDistrict,
	)
	return hubs.Seed(ctx)
}

func ensureIndexes(ctx context.Context, _ *config.Config) (int, error) {
	if err := database.EnsureIndexes(ctx, database.DB); err != nil {
		return 0, err
	}
	return len(database.Indexes()), nil
}
