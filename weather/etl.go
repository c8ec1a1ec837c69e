package weather

import (
	"time"
)

const dateLayout = "2006-01-02"

// DailyObservation is one complete day ready for the database.
type DailyObservation struct {
	Date             string
	TMax             float64
	TMin             float64
	PrecipitationSum float64
	WeatherCode      int
}

// TargetDates returns the seven local days before now, ascending. Today is
// excluded because its aggregates may still be incomplete upstream.
func TargetDates(now time.Time, loc *time.Location) []string {
	today := now.In(loc)
	dates := make([]string, 0, 7)
	for i := 7; i >= 1; i-- {
		dates = append(dates, today.AddDate(0, 0, -i).Format(dateLayout))
	}
	return dates
}

// MapDailyRows aligns the parallel daily arrays by index and keeps only the
// wanted dates. A day missing any value is dropped rather than stored
// half-filled.
func MapDailyRows(resp *ArchiveResponse, wanted []string) []DailyObservation {
	want := make(map[string]bool, len(wanted))
	for _, d := range wanted {
		want[d] = true
	}

	daily := resp.Daily
	rows := make([]DailyObservation, 0, len(daily.Time))
	for i, day := range daily.Time {
		if !want[day] {
			continue
		}
		if i >= len(daily.TemperatureMax) || i >= len(daily.TemperatureMin) ||
			i >= len(daily.PrecipitationSum) || i >= len(daily.WeatherCode) {
			continue
		}
		tmax, tmin := daily.TemperatureMax[i], daily.TemperatureMin[i]
		prcp, code := daily.PrecipitationSum[i], daily.WeatherCode[i]
		if tmax == nil || tmin == nil || prcp == nil || code == nil {
			continue
		}
		rows = append(rows, DailyObservation{
			Date:             day,
			TMax:             *tmax,
			TMin:             *tmin,
			PrecipitationSum: *prcp,
			WeatherCode:      int(*code),
		})
	}
	return rows
}
