// Package model defines the restaurant record shared by stores, sources and
// the query layer.
package model

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Restaurant is a single restaurant listing as served by the remote API.
// Restaurants are read-only once fetched; identity is the ID field.
type Restaurant struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CuisineType  string `json:"cuisine_type"`
	Neighborhood string `json:"neighborhood"`
	LatLng       LatLng `json:"latlng"`

	// Photograph is the image reference without extension.
	// Empty when the listing has no photograph.
	Photograph string `json:"photograph,omitempty"`
}

// HasPhotograph reports whether the restaurant carries a photograph reference.
func (r Restaurant) HasPhotograph() bool {
	return r.Photograph != ""
}
