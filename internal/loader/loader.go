// Package loader reads the two static input files the dashboard runs
// on: the ΔT CSV table and the country boundary GeoJSON. Both are read
// exactly once at startup; any failure here is fatal.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"

	"urban-heatmap/internal/dataset"
)

// SchemaError reports CSV headers the loader expected but did not find.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("csv schema mismatch: missing columns: %s", strings.Join(e.Missing, ", "))
}

// requiredColumns is the identifier column plus the eight ΔT columns.
func requiredColumns() []string {
	cols := []string{dataset.IdentifierProperty}
	for _, s := range dataset.Seasons {
		for _, t := range dataset.TimesOfDay {
			cols = append(cols, dataset.ColumnName(s, t))
		}
	}
	return cols
}

// LoadTable reads the ΔT CSV and returns one typed record per row.
// The header is validated up front so a wrong file fails fast instead
// of rendering an empty map. Rows with a blank identifier are skipped,
// matching how the source dataset marks unnamed urban centres.
func LoadTable(path string) ([]dataset.CountryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("read table: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read table header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns() {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var rows []dataset.CountryRecord
	line := 1
	for {
		raw, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read table row %d: %w", line, err)
		}

		id := strings.TrimSpace(raw[col[dataset.IdentifierProperty]])
		if id == "" {
			continue
		}

		rec := dataset.CountryRecord{ID: id}
		for _, s := range dataset.Seasons {
			for _, t := range dataset.TimesOfDay {
				name := dataset.ColumnName(s, t)
				v, err := strconv.ParseFloat(strings.TrimSpace(raw[col[name]]), 64)
				if err != nil {
					return nil, fmt.Errorf("row %d: column %s: %w", line, name, err)
				}
				rec.SetValue(s, t, v)
			}
		}
		rows = append(rows, rec)
	}

	return rows, nil
}

// LoadBoundaries parses the country boundary GeoJSON into a typed
// feature collection.
func LoadBoundaries(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open boundaries: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse boundaries: %w", err)
	}
	return fc, nil
}
