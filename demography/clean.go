package demography

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
)

// CleanMunicipalRecord is one municipality and year after splitting the raw
// INE series names into municipality and sex. A nil value means the source
// had no series for that sex.
type CleanMunicipalRecord struct {
	Municipio string
	Year      int
	Total     *float64
	Hombres   *float64
	Mujeres   *float64
}

var sexoPattern = regexp.MustCompile(`\b(Total|Hombres|Mujeres)\b`)

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases a municipality name and strips Spanish accents
// so names join cleanly across datasets.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "’", "'")
	name = strings.ToLower(name)
	if folded, _, err := transform.String(accentFolder, name); err == nil {
		name = folded
	}
	return name
}

// CleanMunicipalRecords pivots raw INE records into one row per municipality
// and year. Series names look like "Albacete. Total. Población"; the part
// before the first dot is the municipality and the sex marker selects the
// column. Records without a recognizable sex marker are dropped.
func CleanMunicipalRecords(records []MunicipalRecord) []CleanMunicipalRecord {
	type key struct {
		municipio string
		year      int
	}
	grouped := make(map[key]*CleanMunicipalRecord)

	for _, rec := range records {
		sexo := sexoPattern.FindString(rec.Municipio)
		if sexo == "" {
			continue
		}
		name, _, _ := strings.Cut(rec.Municipio, ".")
		name = NormalizeName(name)

		k := key{municipio: name, year: rec.Year}
		row, ok := grouped[k]
		if !ok {
			row = &CleanMunicipalRecord{Municipio: name, Year: rec.Year}
			grouped[k] = row
		}
		value := rec.Population
		switch sexo {
		case "Total":
			row.Total = &value
		case "Hombres":
			row.Hombres = &value
		case "Mujeres":
			row.Mujeres = &value
		}
	}

	cleaned := make([]CleanMunicipalRecord, 0, len(grouped))
	for _, row := range grouped {
		cleaned = append(cleaned, *row)
	}
	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].Municipio != cleaned[j].Municipio {
			return cleaned[i].Municipio < cleaned[j].Municipio
		}
		return cleaned[i].Year < cleaned[j].Year
	})
	return cleaned
}

// CleanMunicipalDataset flattens cleaned records into CSV rows. Missing sex
// values stay as empty cells.
func CleanMunicipalDataset(records []CleanMunicipalRecord) storage.Dataset {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Municipio,
			strconv.Itoa(rec.Year),
			formatOptional(rec.Total),
			formatOptional(rec.Hombres),
			formatOptional(rec.Mujeres),
		})
	}
	return storage.Dataset{
		Header: []string{"municipio", "year", "total", "hombres", "mujeres"},
		Rows:   rows,
	}
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
