package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/discochess/diner"
)

var showCmd = &cobra.Command{
	Use:   "show [ID]",
	Short: "Show a single restaurant",
	Long: `Show one restaurant with its detail page, image and map marker.

Examples:
  diner show 3
  diner show 3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

type showResult struct {
	diner.Restaurant
	URL    string       `json:"url"`
	Image  string       `json:"image"`
	Marker diner.Marker `json:"marker"`
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid restaurant id %q: %w", args[0], err)
	}

	client, err := openClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	r, err := client.RestaurantByID(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, diner.ErrNotFound) {
			return fmt.Errorf("restaurant %d does not exist", id)
		}
		return fmt.Errorf("lookup failed: %w", err)
	}

	if outputJSON {
		return printJSON(showResult{
			Restaurant: r,
			URL:        diner.URLForRestaurant(r),
			Image:      diner.ImageURLForRestaurant(r),
			Marker:     diner.MapMarkerForRestaurant(r),
		})
	}

	fmt.Printf("ID:           %d\n", r.ID)
	fmt.Printf("Name:         %s\n", r.Name)
	fmt.Printf("Cuisine:      %s\n", r.CuisineType)
	fmt.Printf("Neighborhood: %s\n", r.Neighborhood)
	fmt.Printf("Location:     %.6f, %.6f\n", r.LatLng.Lat, r.LatLng.Lng)
	fmt.Printf("Page:         %s\n", diner.URLForRestaurant(r))
	fmt.Printf("Image:        %s\n", diner.ImageURLForRestaurant(r))
	return nil
}
