// Package aoi parses the configured area of interest.
package aoi

import (
	"fmt"

	"github.com/twpayne/go-geom/encoding/wkt"
)

// BBox is the bounding rectangle of the area of interest in WGS84
// coordinates.
type BBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// ParseBBox extracts the bounds of a WKT geometry. Overpass queries consume
// the result as (south, west, north, east) = (MinLat, MinLon, MaxLat,
// MaxLon).
func ParseBBox(aoiWKT string) (BBox, error) {
	if aoiWKT == "" {
		return BBox{}, fmt.Errorf("AOI WKT cannot be empty")
	}

	geometry, err := wkt.Unmarshal(aoiWKT)
	if err != nil {
		return BBox{}, fmt.Errorf("invalid AOI WKT: %w", err)
	}

	bounds := geometry.Bounds()
	box := BBox{
		MinLon: bounds.Min(0),
		MinLat: bounds.Min(1),
		MaxLon: bounds.Max(0),
		MaxLat: bounds.Max(1),
	}
	if box.MinLon > box.MaxLon || box.MinLat > box.MaxLat {
		return BBox{}, fmt.Errorf("AOI WKT has no area: %s", aoiWKT)
	}
	return box, nil
}
