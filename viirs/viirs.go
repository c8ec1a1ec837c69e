// Package viirs builds the monthly request template for VIIRS night lights
// sampling over the area of interest. The template lists which composites to
// sample; the sampling itself runs elsewhere.
package viirs

import (
	"strconv"
	"time"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/aoi"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
)

// Collection is the VIIRS monthly composite collection.
const Collection = "NOAA/VIIRS/DNB/MONTHLY_V1/VCMCFG"

// Request is one month of night lights sampling over the area of interest.
type Request struct {
	Month      string
	Collection string
	BBox       aoi.BBox
	SpacingKM  float64
}

// Template lists one Request per calendar month between from and to,
// inclusive. A window that ends before it starts yields no requests.
func Template(from, to time.Time, box aoi.BBox, spacingKM float64) []Request {
	requests := []Request{}

	month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !month.After(last) {
		requests = append(requests, Request{
			Month:      month.Format("2006-01"),
			Collection: Collection,
			BBox:       box,
			SpacingKM:  spacingKM,
		})
		month = month.AddDate(0, 1, 0)
	}
	return requests
}

// Dataset shapes requests for CSV persistence.
func Dataset(requests []Request) storage.Dataset {
	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{
			r.Month,
			r.Collection,
			formatCoord(r.BBox.MinLon),
			formatCoord(r.BBox.MinLat),
			formatCoord(r.BBox.MaxLon),
			formatCoord(r.BBox.MaxLat),
			strconv.FormatFloat(r.SpacingKM, 'f', -1, 64),
		})
	}
	return storage.Dataset{
		Header: []string{"month", "collection", "min_lon", "min_lat", "max_lon", "max_lat", "spacing_km"},
		Rows:   rows,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
