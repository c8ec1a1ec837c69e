// Package catalog queries the Copernicus Data Space OData product catalogue.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/juju/ratelimit"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/fetch"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/logging"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
)

// DefaultBaseURL is the public Copernicus Data Space catalogue endpoint.
const DefaultBaseURL = "https://catalogue.dataspace.copernicus.eu/odata/v1"

// pageInterval paces catalogue pagination so long queries stay polite.
const pageInterval = 250 * time.Millisecond

// Product is one catalogue item.
type Product struct {
	ID            string          `json:"Id"`
	Name          string          `json:"Name"`
	ContentType   string          `json:"ContentType"`
	ContentLength int64           `json:"ContentLength"`
	OriginDate    string          `json:"OriginDate"`
	Online        bool            `json:"Online"`
	ContentDate   ContentDate     `json:"ContentDate"`
	GeoFootprint  json.RawMessage `json:"GeoFootprint"`
}

// ContentDate is the acquisition window of a product.
type ContentDate struct {
	Start string `json:"Start"`
	End   string `json:"End"`
}

// Identifier is the product name truncated at the first dot.
func (p Product) Identifier() string {
	if i := strings.IndexByte(p.Name, '.'); i >= 0 {
		return p.Name[:i]
	}
	return p.Name
}

// ContentStart parses the acquisition start timestamp. It reports false when
// the catalogue sent no parseable timestamp.
func (p Product) ContentStart() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, p.ContentDate.Start)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BuildFilter assembles the OData $filter expression for one collection and
// acquisition window, optionally restricted to an area of interest. Cloud
// cover is not filtered.
func BuildFilter(collection, dateFrom, dateTo, aoiWKT string) string {
	parts := []string{fmt.Sprintf("Collection/Name eq '%s'", collection)}
	if aoiWKT != "" {
		parts = append(parts, fmt.Sprintf("OData.CSC.Intersects(area=geography'SRID=4326;%s')", aoiWKT))
	}
	parts = append(parts,
		fmt.Sprintf("ContentDate/Start ge %sT00:00:00.000Z", dateFrom),
		fmt.Sprintf("ContentDate/Start le %sT23:59:59.999Z", dateTo),
	)
	return strings.Join(parts, " and ")
}

// Client pages through catalogue query results.
type Client struct {
	BaseURL  string
	Top      int
	MaxPages int

	http   *http.Client
	bucket *ratelimit.Bucket
}

// NewClient creates a catalogue client. Top is the page size requested from
// the catalogue and MaxPages caps how many pages a single query follows.
func NewClient(baseURL string, top, maxPages int) *Client {
	return &Client{
		BaseURL:  baseURL,
		Top:      top,
		MaxPages: maxPages,
		http:     &http.Client{Timeout: 60 * time.Second},
		bucket:   ratelimit.NewBucket(pageInterval, 1),
	}
}

// page mirrors one OData response page.
type page struct {
	Value    []Product `json:"value"`
	NextLink string    `json:"@odata.nextLink"`
}

// Query runs the filter against the Products endpoint and follows
// @odata.nextLink until the results run out or MaxPages is reached.
func (c *Client) Query(ctx context.Context, filter string) ([]Product, error) {
	next := fmt.Sprintf("%s/Products?$filter=%s&$count=True&$top=%d",
		c.BaseURL, url.QueryEscape(filter), c.Top)

	var products []Product
	for pageNum := 1; next != "" && pageNum <= c.MaxPages; pageNum++ {
		c.bucket.Wait(1)

		var p page
		if err := fetch.JSON(ctx, c.http, next, &p); err != nil {
			return nil, fmt.Errorf("catalogue page %d: %w", pageNum, err)
		}

		products = append(products, p.Value...)
		next = p.NextLink
	}
	if next != "" {
		logging.Warn("Catalogue query truncated at page cap", "max_pages", c.MaxPages)
	}
	return products, nil
}

// Dataset shapes products for CSV persistence. The content_start column is
// the parsed acquisition start in RFC 3339, empty when unparseable.
func Dataset(products []Product) storage.Dataset {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		contentStart := ""
		if t, ok := p.ContentStart(); ok {
			contentStart = t.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			p.ID,
			p.Name,
			p.Identifier(),
			p.ContentType,
			strconv.FormatInt(p.ContentLength, 10),
			p.OriginDate,
			strconv.FormatBool(p.Online),
			contentStart,
			p.ContentDate.End,
			string(p.GeoFootprint),
		})
	}
	return storage.Dataset{
		Header: []string{
			"id", "name", "identifier", "content_type", "content_length",
			"origin_date", "online", "content_start", "content_end", "geo_footprint",
		},
		Rows: rows,
	}
}
