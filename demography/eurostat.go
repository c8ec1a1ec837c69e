// Package demography retrieves population statistics from the Eurostat and
// INE public APIs.
package demography

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/fetch"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/jsonstat"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
)

const (
	DefaultEurostatBaseURL = "https://ec.europa.eu/eurostat/api/dissemination/statistics/1.0/data"
	DefaultINEBaseURL      = "https://servicios.ine.es/wstempus/js/ES"

	eurostatDataset = "demo_r_pjanaggr3"
	eurostatTimeout = 60 * time.Second
)

// Client fetches demographic datasets. Both upstream APIs are public and
// need no authentication.
type Client struct {
	EurostatBaseURL string
	INEBaseURL      string
	http            *http.Client
}

func NewClient(eurostatBaseURL, ineBaseURL string) *Client {
	return &Client{
		EurostatBaseURL: eurostatBaseURL,
		INEBaseURL:      ineBaseURL,
		http:            &http.Client{Timeout: 120 * time.Second},
	}
}

// CountryFilter keeps only the geo codes of one country. Eurostat region
// codes start with the ISO country prefix (ES30, ES511, ...).
func CountryFilter(prefix string) func(string) bool {
	return func(code string) bool {
		return strings.HasPrefix(code, prefix)
	}
}

// FetchPopulationTotalNUTS3 downloads total population by region from the
// Eurostat dissemination API and decodes the JSON-stat answer into
// region/year records, keeping only the geo codes accepted by keep.
func (c *Client) FetchPopulationTotalNUTS3(ctx context.Context, keep func(string) bool) ([]jsonstat.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, eurostatTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("sex", "T")
	params.Set("age", "TOTAL")
	params.Set("format", "JSON")
	u := fmt.Sprintf("%s/%s?%s", c.EurostatBaseURL, eurostatDataset, params.Encode())

	var table jsonstat.Table
	if err := fetch.JSON(ctx, c.http, u, &table); err != nil {
		return nil, fmt.Errorf("eurostat population query: %w", err)
	}
	records, err := table.Records(keep)
	if err != nil {
		return nil, fmt.Errorf("eurostat population response: %w", err)
	}
	return records, nil
}

// ProvinceDataset flattens Eurostat records into CSV rows.
func ProvinceDataset(records []jsonstat.Record) storage.Dataset {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.RegionCode,
			rec.RegionName,
			strconv.Itoa(rec.Year),
			strconv.FormatFloat(rec.Population, 'f', -1, 64),
		})
	}
	return storage.Dataset{
		Header: []string{"region_code", "region_name", "year", "population"},
		Rows:   rows,
	}
}
