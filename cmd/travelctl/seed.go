package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	catalogueStore "travelpoints/internal/catalogue/store"
	redisClient "travelpoints/internal/platform/redis"
	"travelpoints/internal/seed"
	"travelpoints/pkg/platform/tx"
)

func newSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the reference catalogue into Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalogue(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			store := catalogueStore.NewPostgres(db)
			var res seed.Result
			err = tx.Run(ctx, db, func(ctx context.Context) error {
				res, err = seed.Apply(ctx, store, cat)
				return err
			})
			if err != nil {
				return err
			}
			a.logger().InfoContext(ctx, "catalogue seeded", "countries", res.Countries, "cities", res.Cities)
			cmd.Printf("seeded %d countries and %d cities\n", res.Countries, res.Cities)

			purged, err := a.purgeCache(ctx)
			if err != nil {
				return fmt.Errorf("catalogue seeded but cache purge failed: %w", err)
			}
			if purged > 0 {
				cmd.Printf("purged %d cached catalogue entries\n", purged)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "catalogue", "", "catalogue YAML file (defaults to the embedded catalogue)")
	cmd.Flags().String("redis-url", "", "Redis URL whose catalogue cache is purged after seeding (env TRAVELPOINTS_REDIS_URL)")
	_ = a.v.BindPFlag("redis_url", cmd.Flags().Lookup("redis-url"))
	return cmd
}

// purgeCache drops the server's cached catalogue so the new rows are served
// right away. Without a Redis URL there is nothing to purge.
func (a *app) purgeCache(ctx context.Context) (int, error) {
	rdb, err := redisClient.New(ctx, a.config().Redis)
	if err != nil || rdb == nil {
		return 0, err
	}
	defer rdb.Close()
	return catalogueStore.PurgeCache(ctx, rdb.Client)
}

// loadCatalogue reads path, or the embedded catalogue when path is empty.
func loadCatalogue(path string) (*seed.Catalogue, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Parse(f)
}
