package generator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urban-heatmap/internal/dataset"
)

func TestRenderDashboard(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	f.Properties[dataset.IdentifierProperty] = "USA"
	fc.Append(f)

	rows := []dataset.CountryRecord{{ID: "USA", SummerNight: 3.3}}
	idx, _ := dataset.BuildJoinIndex(rows, fc)

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, NewPageData(idx)))
	html := buf.String()

	// default selection pre-selected in the dropdowns
	assert.Contains(t, html, `value="summer" selected`)
	assert.Contains(t, html, `value="night" selected`)

	// boundaries inlined for the first paint
	assert.Contains(t, html, `"FeatureCollection"`)
	assert.Contains(t, html, "USA")

	// legend colors present
	for _, g := range dataset.LegendGrades {
		assert.Contains(t, html, g.Color)
	}
}

func TestRenderDashboardEmptyIndex(t *testing.T) {
	idx, _ := dataset.BuildJoinIndex(nil, geojson.NewFeatureCollection())

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, NewPageData(idx)))

	assert.True(t, strings.Contains(buf.String(), "<div id=\"map\">"))
}
