package demography

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/fetch"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
)

// Table 29005 is the continuous municipal register (padrón) broken down by
// municipality and sex.
const ineTable = "29005"

// MunicipalRecord is one raw INE observation. The series name still carries
// the sex breakdown; CleanMunicipalRecords splits it apart.
type MunicipalRecord struct {
	CodProv    string
	CodMuni    string
	Municipio  string
	Year       int
	Population float64
}

type ineSeries struct {
	Nombre  string `json:"Nombre"`
	CodProv string `json:"CODPROV"`
	CodMuni string `json:"CODMUNI"`
	Data    []struct {
		Anyo  int      `json:"Anyo"`
		Valor *float64 `json:"Valor"`
	} `json:"Data"`
}

// FetchMunicipalPopulation downloads the municipal register series from the
// INE Tempus API. lastYears limits each series to its N most recent values;
// zero requests the full history. Observations without a value are skipped.
func (c *Client) FetchMunicipalPopulation(ctx context.Context, lastYears int) ([]MunicipalRecord, error) {
	u := fmt.Sprintf("%s/DATOS_TABLA/%s", c.INEBaseURL, ineTable)
	if lastYears > 0 {
		u += "?nult=" + strconv.Itoa(lastYears)
	}

	var series []ineSeries
	if err := fetch.JSON(ctx, c.http, u, &series); err != nil {
		return nil, fmt.Errorf("ine municipal query: %w", err)
	}

	var records []MunicipalRecord
	for _, s := range series {
		name := s.Nombre
		if name == "" {
			name = "Desconocido"
		}
		for _, d := range s.Data {
			if d.Valor == nil {
				continue
			}
			records = append(records, MunicipalRecord{
				CodProv:    s.CodProv,
				CodMuni:    s.CodMuni,
				Municipio:  name,
				Year:       d.Anyo,
				Population: *d.Valor,
			})
		}
	}
	return records, nil
}

// MunicipalDataset flattens raw INE records into CSV rows.
func MunicipalDataset(records []MunicipalRecord) storage.Dataset {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CodProv,
			rec.CodMuni,
			rec.Municipio,
			strconv.Itoa(rec.Year),
			strconv.FormatFloat(rec.Population, 'f', -1, 64),
		})
	}
	return storage.Dataset{
		Header: []string{"cod_prov", "cod_muni", "municipio", "year", "population"},
		Rows:   rows,
	}
}
