// Package server wires the join index into the HTTP surface: the
// dashboard page, the JSON API the page polls, and the health/metrics
// endpoints.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urban-heatmap/internal/dataset"
	"urban-heatmap/internal/generator"
	"urban-heatmap/internal/observability"
)

// Server holds the immutable join index and the metrics collectors.
// The index is read-only after construction, so handlers share it
// without locking.
type Server struct {
	idx     *dataset.JoinIndex
	metrics *observability.Metrics
	page    generator.PageData
}

// SetupRouter builds the gin engine serving the dashboard and its API.
func SetupRouter(idx *dataset.JoinIndex, metrics *observability.Metrics) *gin.Engine {
	s := &Server{
		idx:     idx,
		metrics: metrics,
		page:    generator.NewPageData(idx),
	}

	r := gin.Default()

	r.GET("/", s.dashboard)

	api := r.Group("/api")
	{
		api.GET("/values", s.values)
		api.GET("/countries", s.countries)
		api.GET("/country/:name", s.country)
		api.GET("/geojson", s.boundaries)
		api.GET("/legend", s.legend)
	}

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

// dashboard renders the single-page UI.
func (s *Server) dashboard(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := generator.RenderDashboard(c.Writer, s.page); err != nil {
		_ = c.Error(err)
	}
}

// valueColor is one country's entry in the projected value map.
type valueColor struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// values returns the per-country scalar map for one selection. The
// selection is echoed back so the client can discard stale responses.
func (s *Server) values(c *gin.Context) {
	def := dataset.DefaultSelection()
	sel, err := dataset.ParseSelection(
		c.DefaultQuery("season", string(def.Season)),
		c.DefaultQuery("time", string(def.Time)),
	)
	if err != nil {
		s.metrics.BadSelections.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projected := s.idx.Project(sel)
	values := make(map[string]valueColor, len(projected))
	for id, v := range projected {
		values[id] = valueColor{Value: v, Color: dataset.ColorFor(v)}
	}

	s.metrics.Projections.WithLabelValues(string(sel.Season), string(sel.Time)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"selection": sel,
		"values":    values,
	})
}

// countries lists the joined identifiers in sorted order.
func (s *Server) countries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": s.idx.Countries()})
}

// country returns one country's eight ΔT fields plus the per-season
// day/night pairs the scatter view plots.
func (s *Server) country(c *gin.Context) {
	name := c.Param("name")
	rec, ok := s.idx.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "country not found: " + name})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record": rec.Record,
		"points": rec.Record.ScatterPoints(),
	})
}

// boundaries returns the joined feature collection.
func (s *Server) boundaries(c *gin.Context) {
	c.JSON(http.StatusOK, s.idx.FeatureCollection())
}

// legend returns the fixed color scale.
func (s *Server) legend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"grades":  dataset.LegendGrades,
		"missing": dataset.MissingColor,
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"countries": s.idx.Len(),
	})
}
