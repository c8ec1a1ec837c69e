package viirs

import (
	"testing"
	"time"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/aoi"
)

var spainBox = aoi.BBox{MinLon: -9.5, MinLat: 36.0, MaxLon: 3.3, MaxLat: 43.8}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTemplateMonthsAcrossYearBoundary(t *testing.T) {
	requests := Template(date(2024, time.November, 15), date(2025, time.February, 3), spainBox, 10)

	expected := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	if len(requests) != len(expected) {
		t.Fatalf("Expected %d requests, got %d", len(expected), len(requests))
	}
	for i, month := range expected {
		if requests[i].Month != month {
			t.Errorf("Request %d: expected month %s, got %s", i, month, requests[i].Month)
		}
		if requests[i].Collection != Collection {
			t.Errorf("Request %d: expected collection %s, got %s", i, Collection, requests[i].Collection)
		}
		if requests[i].SpacingKM != 10 {
			t.Errorf("Request %d: expected spacing 10, got %v", i, requests[i].SpacingKM)
		}
	}
}

func TestTemplateSingleMonth(t *testing.T) {
	requests := Template(date(2025, time.June, 1), date(2025, time.June, 30), spainBox, 10)
	if len(requests) != 1 {
		t.Fatalf("Expected a single request, got %d", len(requests))
	}
	if requests[0].Month != "2025-06" {
		t.Errorf("Expected month 2025-06, got %s", requests[0].Month)
	}
}

func TestTemplateInvertedWindow(t *testing.T) {
	requests := Template(date(2025, time.June, 1), date(2025, time.January, 1), spainBox, 10)
	if len(requests) != 0 {
		t.Errorf("Expected no requests for an inverted window, got %d", len(requests))
	}
}

func TestDatasetRows(t *testing.T) {
	requests := Template(date(2025, time.June, 1), date(2025, time.July, 1), spainBox, 10)

	ds := Dataset(requests)
	expectedHeader := []string{"month", "collection", "min_lon", "min_lat", "max_lon", "max_lat", "spacing_km"}
	for i, col := range expectedHeader {
		if ds.Header[i] != col {
			t.Errorf("Header %d: expected %s, got %s", i, col, ds.Header[i])
		}
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(ds.Rows))
	}

	first := ds.Rows[0]
	expected := []string{"2025-06", Collection, "-9.5", "36", "3.3", "43.8", "10"}
	for i, field := range expected {
		if first[i] != field {
			t.Errorf("Row field %d: expected %q, got %q", i, field, first[i])
		}
	}
}
