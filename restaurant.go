package diner

import (
	"strconv"

	"github.com/discochess/diner/internal/model"
)

// Restaurant is a single restaurant listing.
type Restaurant = model.Restaurant

// LatLng is a geographic coordinate.
type LatLng = model.LatLng

// DefaultImageURL is served for restaurants without a photograph.
const DefaultImageURL = "/img/default-annie-spratt.jpg"

// Marker describes a map marker for a restaurant.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`
	Alt   string  `json:"alt"`
	URL   string  `json:"url"`
}

// URLForRestaurant returns the restaurant's detail page URL.
func URLForRestaurant(r Restaurant) string {
	return "./restaurant.html?id=" + strconv.FormatInt(r.ID, 10)
}

// ImageURLForRestaurant returns the restaurant's image URL, or
// DefaultImageURL when it has no photograph.
func ImageURLForRestaurant(r Restaurant) string {
	if !r.HasPhotograph() {
		return DefaultImageURL
	}
	return "/img/" + r.Photograph + ".jpg"
}

// MapMarkerForRestaurant returns the marker descriptor for r.
func MapMarkerForRestaurant(r Restaurant) Marker {
	return Marker{
		Lat:   r.LatLng.Lat,
		Lng:   r.LatLng.Lng,
		Title: r.Name,
		Alt:   r.Name,
		URL:   URLForRestaurant(r),
	}
}
