package demography

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Cádiz ", "cadiz"},
		{"La Coruña", "la coruna"},
		{"l’Hospitalet de Llobregat", "l'hospitalet de llobregat"},
		{"ALCALÁ DE HENARES", "alcala de henares"},
		{"Begur", "begur"},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestCleanMunicipalRecordsPivot(t *testing.T) {
	records := []MunicipalRecord{
		{Municipio: "Albacete. Total. Población", Year: 2024, Population: 174336},
		{Municipio: "Albacete. Hombres. Población", Year: 2024, Population: 86000},
		{Municipio: "Albacete. Mujeres. Población", Year: 2024, Population: 88336},
		{Municipio: "Albacete. Total. Población", Year: 2023, Population: 173329},
		{Municipio: "Ababuj. Total. Población", Year: 2024, Population: 65},
		{Municipio: "Serie sin desglose", Year: 2024, Population: 1},
	}

	cleaned := CleanMunicipalRecords(records)
	if len(cleaned) != 3 {
		t.Fatalf("Expected 3 pivoted rows, got %d", len(cleaned))
	}

	if cleaned[0].Municipio != "ababuj" || cleaned[0].Year != 2024 {
		t.Errorf("Expected ababuj 2024 first, got %+v", cleaned[0])
	}
	if cleaned[1].Municipio != "albacete" || cleaned[1].Year != 2023 {
		t.Errorf("Expected albacete 2023 second, got %+v", cleaned[1])
	}

	full := cleaned[2]
	if full.Municipio != "albacete" || full.Year != 2024 {
		t.Fatalf("Expected albacete 2024 last, got %+v", full)
	}
	if full.Total == nil || *full.Total != 174336 {
		t.Errorf("Unexpected total: %v", full.Total)
	}
	if full.Hombres == nil || *full.Hombres != 86000 {
		t.Errorf("Unexpected hombres: %v", full.Hombres)
	}
	if full.Mujeres == nil || *full.Mujeres != 88336 {
		t.Errorf("Unexpected mujeres: %v", full.Mujeres)
	}

	partial := cleaned[1]
	if partial.Total == nil || *partial.Total != 173329 {
		t.Errorf("Unexpected total for 2023: %v", partial.Total)
	}
	if partial.Hombres != nil || partial.Mujeres != nil {
		t.Error("Expected missing sexes to stay nil")
	}
}

func TestCleanMunicipalRecordsDeterministic(t *testing.T) {
	records := []MunicipalRecord{
		{Municipio: "Zaragoza. Total. Población", Year: 2024, Population: 675301},
		{Municipio: "Albacete. Total. Población", Year: 2024, Population: 174336},
		{Municipio: "Albacete. Total. Población", Year: 2022, Population: 172722},
	}

	first := CleanMunicipalRecords(records)
	for i := 0; i < 10; i++ {
		again := CleanMunicipalRecords(records)
		for j := range first {
			if first[j].Municipio != again[j].Municipio || first[j].Year != again[j].Year {
				t.Fatalf("Expected stable ordering, run %d differs at %d", i, j)
			}
		}
	}
	if first[0].Municipio != "albacete" || first[0].Year != 2022 {
		t.Errorf("Expected albacete 2022 first, got %+v", first[0])
	}
	if first[2].Municipio != "zaragoza" {
		t.Errorf("Expected zaragoza last, got %+v", first[2])
	}
}

func TestCleanMunicipalDataset(t *testing.T) {
	total := 174336.0
	ds := CleanMunicipalDataset([]CleanMunicipalRecord{
		{Municipio: "albacete", Year: 2024, Total: &total},
	})

	want := []string{"municipio", "year", "total", "hombres", "mujeres"}
	for i, col := range want {
		if ds.Header[i] != col {
			t.Errorf("Expected header %q at %d, got %q", col, i, ds.Header[i])
		}
	}
	row := ds.Rows[0]
	if row[0] != "albacete" || row[1] != "2024" || row[2] != "174336" {
		t.Errorf("Unexpected row: %v", row)
	}
	if row[3] != "" || row[4] != "" {
		t.Errorf("Expected empty cells for missing sexes, got %v", row)
	}
}
