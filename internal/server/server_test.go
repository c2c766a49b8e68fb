package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urban-heatmap/internal/dataset"
	"urban-heatmap/internal/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testIndex() *dataset.JoinIndex {
	rows := []dataset.CountryRecord{
		{ID: "USA", WinterDay: 1.2, WinterNight: 0.8, SummerNight: 3.3},
		{ID: "Karlsruhe [DEU]", WinterDay: -0.4, SummerNight: 2.1},
	}

	fc := geojson.NewFeatureCollection()
	for _, id := range []string{"USA", "Karlsruhe [DEU]"} {
		f := geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
		f.Properties[dataset.IdentifierProperty] = id
		fc.Append(f)
	}

	idx, _ := dataset.BuildJoinIndex(rows, fc)
	return idx
}

func testRouter(idx *dataset.JoinIndex) *gin.Engine {
	return SetupRouter(idx, observability.NewMetrics())
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(rec, req)
	return rec
}

type valuesResponse struct {
	Selection dataset.Selection `json:"selection"`
	Values    map[string]struct {
		Value float64 `json:"value"`
		Color string  `json:"color"`
	} `json:"values"`
}

func TestValuesProjection(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/api/values?season=winter&time=day")

	require.Equal(t, http.StatusOK, rec.Code)

	var body valuesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, dataset.Selection{Season: dataset.Winter, Time: dataset.Day}, body.Selection)
	require.Len(t, body.Values, 2)
	assert.Equal(t, 1.2, body.Values["USA"].Value)
	assert.Equal(t, "#fee0b6", body.Values["USA"].Color)
	assert.Equal(t, -0.4, body.Values["Karlsruhe [DEU]"].Value)
	assert.Equal(t, "#d8daeb", body.Values["Karlsruhe [DEU]"].Color)
}

func TestValuesDefaultSelection(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/api/values")

	require.Equal(t, http.StatusOK, rec.Code)

	var body valuesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, dataset.DefaultSelection(), body.Selection)
	assert.Equal(t, 3.3, body.Values["USA"].Value)
}

func TestValuesRejectsUnknownSeason(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/api/values?season=monsoon&time=day")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown season")
}

func TestValuesEmptyIndex(t *testing.T) {
	idx, _ := dataset.BuildJoinIndex(nil, geojson.NewFeatureCollection())
	r := testRouter(idx)
	rec := get(t, r, "/api/values?season=winter&time=day")

	require.Equal(t, http.StatusOK, rec.Code)

	var body valuesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Values)
}

func TestCountries(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/api/countries")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Countries []string `json:"countries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Karlsruhe [DEU]", "USA"}, body.Countries)
}

func TestCountryDetail(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/api/country/USA")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Record dataset.CountryRecord  `json:"record"`
		Points []dataset.ScatterPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "USA", body.Record.ID)
	require.Len(t, body.Points, 4)
	assert.Equal(t, dataset.Winter, body.Points[0].Season)
	assert.Equal(t, 1.2, body.Points[0].Day)
	assert.Equal(t, 0.8, body.Points[0].Night)
}

func TestCountryDetailNotFound(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/api/country/Atlantis")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBoundariesExcludeUnjoined(t *testing.T) {
	rows := []dataset.CountryRecord{{ID: "USA"}}
	fc := geojson.NewFeatureCollection()
	for _, id := range []string{"USA", "Mordor"} {
		f := geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
		f.Properties[dataset.IdentifierProperty] = id
		fc.Append(f)
	}
	idx, _ := dataset.BuildJoinIndex(rows, fc)

	rec := get(t, testRouter(idx), "/api/geojson")
	require.Equal(t, http.StatusOK, rec.Code)

	parsed, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.Features, 1)
	assert.Equal(t, "USA", dataset.FeatureID(parsed.Features[0]))
}

func TestLegend(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/api/legend")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#542788")
	assert.Contains(t, rec.Body.String(), dataset.MissingColor)
}

func TestHealthz(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string `json:"status"`
		Countries int    `json:"countries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 2, body.Countries)
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(testIndex())

	// a served projection should show up in the counter
	get(t, r, "/api/values?season=winter&time=day")
	rec := get(t, r, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "urban_heatmap_projection_requests_total")
}

func TestDashboardPage(t *testing.T) {
	r := testRouter(testIndex())
	rec := get(t, r, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Urban Heatmap")
	assert.Contains(t, rec.Body.String(), "Karlsruhe [DEU]")
}
