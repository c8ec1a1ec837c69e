// Package osm queries the Overpass API for OpenStreetMap features inside
// the area of interest.
package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/aoi"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/fetch"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
)

const DefaultBaseURL = "https://overpass-api.de/api/interpreter"

// Station is a railway station node returned by Overpass.
type Station struct {
	OSMID int64
	Name  string
	Lat   float64
	Lon   float64
	Tags  map[string]string
}

type overpassResponse struct {
	Elements []struct {
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Client talks to a single Overpass endpoint. Overpass can take a long
// time to answer under load, so the HTTP timeout is generous.
type Client struct {
	BaseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 180 * time.Second},
	}
}

// FetchRailStations retrieves every node tagged railway=station within the
// bounding box. Overpass bounding boxes are (south, west, north, east).
func (c *Client) FetchRailStations(ctx context.Context, box aoi.BBox) ([]Station, error) {
	query := fmt.Sprintf(`[out:json][timeout:120];node["railway"="station"](%s,%s,%s,%s);out body;`,
		formatCoord(box.MinLat), formatCoord(box.MinLon), formatCoord(box.MaxLat), formatCoord(box.MaxLon))

	var resp overpassResponse
	form := url.Values{"data": {query}}
	if err := fetch.PostFormJSON(ctx, c.http, c.BaseURL, form, &resp); err != nil {
		return nil, fmt.Errorf("overpass query: %w", err)
	}

	stations := make([]Station, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		stations = append(stations, Station{
			OSMID: el.ID,
			Name:  el.Tags["name"],
			Lat:   el.Lat,
			Lon:   el.Lon,
			Tags:  el.Tags,
		})
	}
	return stations, nil
}

// Dataset flattens stations into CSV rows. The full tag map is kept as a
// JSON document in the last column so no attribute is lost.
func Dataset(stations []Station) (storage.Dataset, error) {
	rows := make([][]string, 0, len(stations))
	for _, s := range stations {
		tags, err := json.Marshal(s.Tags)
		if err != nil {
			return storage.Dataset{}, fmt.Errorf("encoding tags for node %d: %w", s.OSMID, err)
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.OSMID, 10),
			s.Name,
			formatCoord(s.Lat),
			formatCoord(s.Lon),
			string(tags),
		})
	}
	return storage.Dataset{
		Header: []string{"osm_id", "name", "lat", "lon", "tags"},
		Rows:   rows,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
