// opsctl is the admin CLI for the operations dashboard: run a sync, list
// low-stock items, or inspect the job schedule without going through the
// HTTP API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"launchops/internal/config"
	"launchops/internal/models"
	"launchops/internal/recon"
	"launchops/internal/store"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:   "opsctl",
		Short: "Admin commands for the operations dashboard",
	}
	root.PersistentFlags().StringVar(&configFile, "config", "configs/config.yaml", "path to configuration file")

	root.AddCommand(syncCmd(), lowStockCmd(), scheduleCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (store.Store, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		cfg = config.Default()
	}
	switch cfg.Storage.Driver {
	case "memory":
		return nil, nil, fmt.Errorf("memory storage holds no state outside the server process")
	case "sqlite3", "postgres":
		s, err := store.OpenSQL(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		return store.NewRedisStore(client), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a fullSync pass now",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			recon.NewEngine(s).FullSync()
			fmt.Println("sync complete")
			return nil
		},
	}
}

func lowStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List inventory items at or below their threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			items, err := store.Collection[models.InventoryItem](s, store.KeyInventory)
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.CurrentStock > item.LowStockThreshold() {
					continue
				}
				fmt.Printf("%-30s %-15s stock=%d threshold=%d\n",
					item.Name, item.Vendor, item.CurrentStock, item.LowStockThreshold())
			}
			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Show the persisted next-due time of each job",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			sched, err := store.Object[map[string]time.Time](s, store.KeySchedule)
			if err == store.ErrNotFound {
				fmt.Println("no schedule persisted")
				return nil
			}
			if err != nil {
				return err
			}
			for name, due := range sched {
				fmt.Printf("%-15s next due %s\n", name, due.Format(time.RFC3339))
			}
			return nil
		},
	}
}
