// Package query implements lookups and attribute filters over a restaurant
// collection. Nothing here modifies its input.
package query

import "github.com/discochess/diner/internal/model"

// All disables filtering on an axis.
const All = "all"

// Criteria selects restaurants by cuisine and neighborhood.
// An empty or All value leaves that axis unfiltered.
type Criteria struct {
	Cuisine      string
	Neighborhood string
}

// Matches reports whether r satisfies every filtered axis.
func (c Criteria) Matches(r model.Restaurant) bool {
	if active(c.Cuisine) && r.CuisineType != c.Cuisine {
		return false
	}
	if active(c.Neighborhood) && r.Neighborhood != c.Neighborhood {
		return false
	}
	return true
}

// ByID returns the first restaurant with the given ID.
func ByID(restaurants []model.Restaurant, id int64) (model.Restaurant, bool) {
	for _, r := range restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return model.Restaurant{}, false
}

// Filter returns the restaurants matching c, in collection order.
// The result is never nil.
func Filter(restaurants []model.Restaurant, c Criteria) []model.Restaurant {
	out := make([]model.Restaurant, 0)
	for _, r := range restaurants {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func active(v string) bool {
	return v != "" && v != All
}
