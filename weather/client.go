// Package weather loads daily observations from the Open-Meteo archive API
// into Postgres.
package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/fetch"
)

const DefaultArchiveBaseURL = "https://archive-api.open-meteo.com/v1/archive"

const dailyVariables = "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode"

// ArchiveResponse mirrors the daily block of an Open-Meteo archive answer.
// Values decode into pointers so JSON nulls survive.
type ArchiveResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
		TemperatureMin   []*float64 `json:"temperature_2m_min"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
		WeatherCode      []*float64 `json:"weathercode"`
	} `json:"daily"`
}

type Client struct {
	BaseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, http: &http.Client{Timeout: 60 * time.Second}}
}

// FetchDailyArchive downloads daily aggregates for one location between two
// ISO dates, inclusive. The timezone makes the answer's dates local days.
func (c *Client) FetchDailyArchive(ctx context.Context, lat, lon float64, startDate, endDate, timezone string) (*ArchiveResponse, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	params.Set("daily", dailyVariables)
	params.Set("timezone", timezone)

	var resp ArchiveResponse
	if err := fetch.JSON(ctx, c.http, c.BaseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("open-meteo archive query: %w", err)
	}
	return &resp, nil
}
