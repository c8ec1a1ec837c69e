package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/fetch"
)

func TestFetchDailyArchive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "40.3581" || q.Get("longitude") != "-3.9043" {
			t.Errorf("Unexpected coordinates: %v", q)
		}
		if q.Get("start_date") != "2025-03-03" || q.Get("end_date") != "2025-03-09" {
			t.Errorf("Unexpected date window: %v", q)
		}
		if q.Get("daily") != "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode" {
			t.Errorf("Unexpected daily variables: %q", q.Get("daily"))
		}
		if q.Get("timezone") != "Europe/Madrid" {
			t.Errorf("Unexpected timezone: %q", q.Get("timezone"))
		}
		w.Write([]byte(`{
			"daily": {
				"time": ["2025-03-03", "2025-03-04"],
				"temperature_2m_max": [15.2, null],
				"temperature_2m_min": [4.1, 5.0],
				"precipitation_sum": [0, 1.2],
				"weathercode": [3, 61]
			}
		}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).FetchDailyArchive(context.Background(),
		40.3581, -3.9043, "2025-03-03", "2025-03-09", "Europe/Madrid")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(resp.Daily.Time) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(resp.Daily.Time))
	}
	if resp.Daily.TemperatureMax[0] == nil || *resp.Daily.TemperatureMax[0] != 15.2 {
		t.Errorf("Unexpected tmax: %v", resp.Daily.TemperatureMax[0])
	}
	if resp.Daily.TemperatureMax[1] != nil {
		t.Error("Expected a JSON null to decode as nil")
	}
}

func TestFetchDailyArchiveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchDailyArchive(context.Background(),
		40.3581, -3.9043, "2025-03-03", "2025-03-09", "Europe/Madrid")
	if err == nil {
		t.Fatal("Expected an error from a 429 response")
	}
	var fetchErr *fetch.Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected a fetch error, got %v", err)
	}
	if fetchErr.Status != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", fetchErr.Status)
	}
}
