package jsonstat

import (
	"fmt"
	"sort"
	"strconv"
)

// Record is one decoded observation of the (time, geo) table.
type Record struct {
	RegionCode string
	RegionName string
	Year       int
	Population float64
}

// Records decodes the sparse value mapping into one Record per entry whose
// region code satisfies keep. The linear index decomposes as
// time = index div n_geo, geo = index mod n_geo. Output is ordered by linear
// index, so the same table always yields the same sequence.
func (t *Table) Records(keep func(code string) bool) ([]Record, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	geo := t.Dimension.Geo.Category.Label
	times := t.Dimension.Time.Category.Label
	nGeo := len(geo)
	nCells := nGeo * len(times)

	type cell struct {
		index int
		value float64
	}
	cells := make([]cell, 0, len(t.Value))
	for key, value := range t.Value {
		index, err := strconv.Atoi(key)
		if err != nil {
			return nil, &SchemaError{Field: "value", Reason: fmt.Sprintf("key %q is not an integer", key)}
		}
		if index < 0 || index >= nCells {
			return nil, &SchemaError{Field: "value", Reason: fmt.Sprintf("key %d outside [0, %d)", index, nCells)}
		}
		cells = append(cells, cell{index: index, value: value})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].index < cells[j].index })

	records := make([]Record, 0, len(cells))
	for _, c := range cells {
		timeEntry := times[c.index/nGeo]
		geoEntry := geo[c.index%nGeo]

		if !keep(geoEntry.Code) {
			continue
		}

		year, err := strconv.Atoi(timeEntry.Code)
		if err != nil {
			return nil, &SchemaError{
				Field:  "dimension.time",
				Reason: fmt.Sprintf("period %q is not a year", timeEntry.Code),
			}
		}

		records = append(records, Record{
			RegionCode: geoEntry.Code,
			RegionName: geoEntry.Label,
			Year:       year,
			Population: c.value,
		})
	}
	return records, nil
}
