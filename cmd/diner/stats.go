package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/discochess/diner/internal/config"
	"github.com/discochess/diner/internal/store/cachedstore"
	"github.com/discochess/diner/internal/store/sqlitestore"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the local store",
	Long: `Display statistics about the local store including:
- Store kind and location
- Number of cached restaurants
- Schema version and size on disk (sqlite only)`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type storeStats struct {
	Store         string `json:"store"`
	DataDir       string `json:"data_dir"`
	Restaurants   int    `json:"restaurants"`
	SchemaVersion int    `json:"schema_version,omitempty"`
	SizeBytes     int64  `json:"size_bytes,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if cfg.Store == config.StoreNone || cfg.Store == config.StoreMemory {
		return fmt.Errorf("store %q keeps nothing between runs", cfg.Store)
	}

	// Check if data directory exists.
	if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
		return fmt.Errorf("data directory %q does not exist; run 'diner list' first", cfg.DataDir)
	}

	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}
	defer st.Close()

	out := storeStats{Store: cfg.Store, DataDir: cfg.DataDir}
	if cs, ok := st.(*cachedstore.Store); ok {
		st = cs.Unwrap()
	}
	if sq, ok := st.(*sqlitestore.Store); ok {
		if out.Restaurants, err = sq.Count(ctx); err != nil {
			return fmt.Errorf("counting restaurants: %w", err)
		}
		if out.SchemaVersion, err = sq.SchemaVersion(ctx); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		if info, err := os.Stat(filepath.Join(cfg.DataDir, config.DatabaseFile)); err == nil {
			out.SizeBytes = info.Size()
		}
	} else {
		restaurants, err := st.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("reading local store: %w", err)
		}
		out.Restaurants = len(restaurants)
	}

	if outputJSON {
		return printJSON(out)
	}
	if out.Restaurants == 0 {
		fmt.Println("No restaurants cached yet.")
		fmt.Println("Run 'diner list' while the API is reachable to fill the store.")
		return nil
	}

	fmt.Printf("Store:          %s\n", out.Store)
	fmt.Printf("Data directory: %s\n", out.DataDir)
	fmt.Printf("Restaurants:    %d\n", out.Restaurants)
	if out.SchemaVersion > 0 {
		fmt.Printf("Schema version: %d\n", out.SchemaVersion)
		fmt.Printf("Total size:     %s\n", formatBytes(out.SizeBytes))
	}
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
