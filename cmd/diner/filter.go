package main

import (
	"github.com/spf13/cobra"

	"github.com/discochess/diner"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter restaurants by cuisine and neighborhood",
	Long: `Filter restaurants by exact cuisine type and neighborhood.
Either filter may be omitted or set to "all".

Examples:
  diner filter --cuisine Pizza
  diner filter --neighborhood Brooklyn
  diner filter --cuisine Asian --neighborhood Manhattan`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

var (
	cuisine      string
	neighborhood string
)

func init() {
	filterCmd.Flags().StringVar(&cuisine, "cuisine", diner.All, "cuisine type to match")
	filterCmd.Flags().StringVar(&neighborhood, "neighborhood", diner.All, "neighborhood to match")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	client, err := openClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	restaurants, err := client.RestaurantsByCuisineAndNeighborhood(cmd.Context(), cuisine, neighborhood)
	if err != nil {
		return err
	}
	return printRestaurants(restaurants)
}
