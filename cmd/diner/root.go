package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/diner"
	"github.com/discochess/diner/internal/config"
	"github.com/discochess/diner/internal/stats"
	statslogger "github.com/discochess/diner/internal/stats/logger"
)

var (
	// Global flags.
	apiURL     string
	dataDir    string
	storeKind  string
	timeout    time.Duration
	verbose    bool
	outputJSON bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "diner",
	Short: "Offline-first access to the restaurant listing",
	Long: `Diner is a CLI tool for querying the restaurant listing.

The first successful request mirrors the listing from the API into a local
store; later requests are answered from that store, even when the API is
unreachable.

Configuration is read from DINER_* environment variables; flags override them.

Examples:
  # List every restaurant
  diner list

  # Show one restaurant
  diner show 3

  # Italian restaurants in any neighborhood
  diner filter --cuisine Italian

  # Available neighborhoods
  diner facets neighborhoods`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "restaurant API base URL (env DINER_API_URL)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "directory for the local store (env DINER_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "local store: sqlite, disk, memory, none (env DINER_STORE)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "remote fetch timeout (env DINER_FETCH_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.ParseEnv(&cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("store") {
		cfg.Store = storeKind
	}
	if flags.Changed("timeout") {
		cfg.FetchTimeout = timeout
	}
	return cfg.Validate()
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openClient builds a client from the loaded configuration.
func openClient(ctx context.Context) (*diner.Client, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	var collector stats.Collector = stats.NewNoop()
	if verbose {
		collector = statslogger.New(logger.Named("stats"))
	}

	src, err := cfg.OpenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating source: %w", err)
	}

	opts := []diner.Option{
		diner.WithSource(src),
		diner.WithStats(collector),
		diner.WithLogger(logger.Named("diner")),
		diner.WithFetchTimeout(cfg.FetchTimeout),
	}

	st, err := cfg.OpenStore(ctx)
	if err != nil {
		// Without durable storage the client still works online.
		logger.Warn("local store unavailable, running network-only",
			zap.String("store", cfg.Store),
			zap.Error(err),
		)
	} else if st != nil {
		opts = append(opts, diner.WithStore(st))
	}

	client, err := diner.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return client, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRestaurants(restaurants []diner.Restaurant) error {
	if outputJSON {
		return printJSON(restaurants)
	}
	if len(restaurants) == 0 {
		fmt.Println("No restaurants found.")
		return nil
	}
	for _, r := range restaurants {
		fmt.Printf("%4d  %-32s %-12s %s\n", r.ID, r.Name, r.CuisineType, r.Neighborhood)
	}
	return nil
}
