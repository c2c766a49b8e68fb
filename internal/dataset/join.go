package dataset

import (
	"sort"

	"github.com/paulmach/orb/geojson"
)

// JoinedRecord pairs one country's ΔT record with its boundary feature.
type JoinedRecord struct {
	Record  CountryRecord
	Feature *geojson.Feature
}

// JoinStats counts what survived the join and what fell out of it.
type JoinStats struct {
	Joined       int // identifiers present in both sources
	TableOnly    int // CSV rows with no boundary feature
	BoundaryOnly int // features with no CSV row (or no identifier at all)
}

// JoinIndex maps country identifier to joined record. It is built once
// at startup and read-only afterwards, so handlers may share it without
// locking.
type JoinIndex struct {
	records  map[string]JoinedRecord
	features *geojson.FeatureCollection
}

// FeatureID extracts the country identifier from a boundary feature.
// Returns "" when the property is absent or not a string.
func FeatureID(f *geojson.Feature) string {
	id, _ := f.Properties[IdentifierProperty].(string)
	return id
}

// BuildJoinIndex joins table rows and boundary features on the country
// identifier. Identifiers present in only one source are dropped; the
// returned stats make those gaps visible to the caller.
func BuildJoinIndex(rows []CountryRecord, fc *geojson.FeatureCollection) (*JoinIndex, JoinStats) {
	byID := make(map[string]CountryRecord, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	idx := &JoinIndex{
		records:  make(map[string]JoinedRecord),
		features: geojson.NewFeatureCollection(),
	}
	var stats JoinStats

	for _, f := range fc.Features {
		id := FeatureID(f)
		if id == "" {
			stats.BoundaryOnly++
			continue
		}
		rec, ok := byID[id]
		if !ok {
			stats.BoundaryOnly++
			continue
		}
		if _, dup := idx.records[id]; dup {
			// first feature wins when a boundary file repeats an identifier
			continue
		}
		idx.records[id] = JoinedRecord{Record: rec, Feature: f}
		idx.features.Append(f)
	}

	stats.Joined = len(idx.records)
	stats.TableOnly = len(byID) - len(idx.records)
	return idx, stats
}

// Len returns the number of joined countries.
func (ix *JoinIndex) Len() int {
	return len(ix.records)
}

// Get looks up one joined country by identifier.
func (ix *JoinIndex) Get(id string) (JoinedRecord, bool) {
	rec, ok := ix.records[id]
	return rec, ok
}

// Countries returns the joined identifiers in sorted order.
func (ix *JoinIndex) Countries() []string {
	ids := make([]string, 0, len(ix.records))
	for id := range ix.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FeatureCollection returns the joined boundaries. Boundary-only
// features never appear here.
func (ix *JoinIndex) FeatureCollection() *geojson.FeatureCollection {
	return ix.features
}

// Project slices the index down to one scalar per joined country for
// the given selection. Pure: the same selection always yields the same
// mapping while the index lives.
func (ix *JoinIndex) Project(sel Selection) map[string]float64 {
	values := make(map[string]float64, len(ix.records))
	for id, rec := range ix.records {
		values[id] = rec.Record.Value(sel.Season, sel.Time)
	}
	return values
}
