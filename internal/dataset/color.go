package dataset

// Diverging color scale from the reference study's published app:
// warm oranges for positive anomalies, cool purples for negative ones.

// MissingColor is used for polygons with no ΔT value.
const MissingColor = "#cccccc"

// LegendGrade is one row of the map legend.
type LegendGrade struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// LegendGrades lists the legend rows from hottest to coldest.
var LegendGrades = []LegendGrade{
	{Label: "> 9", Color: "#b35806"},
	{Label: "> 6", Color: "#e08214"},
	{Label: "> 3", Color: "#fdb863"},
	{Label: "> 0", Color: "#fee0b6"},
	{Label: "= 0", Color: "#f7f7f7"},
	{Label: "< 0", Color: "#d8daeb"},
	{Label: "< -3", Color: "#b2abd2"},
	{Label: "< -6", Color: "#8073ac"},
	{Label: "< -9", Color: "#542788"},
}

// ColorFor maps a ΔT value (°C) onto the fixed diverging scale.
func ColorFor(v float64) string {
	switch {
	case v > 9:
		return "#b35806"
	case v > 6:
		return "#e08214"
	case v > 3:
		return "#fdb863"
	case v > 0:
		return "#fee0b6"
	case v == 0:
		return "#f7f7f7"
	case v > -3:
		return "#d8daeb"
	case v > -6:
		return "#b2abd2"
	case v > -9:
		return "#8073ac"
	default:
		return "#542788"
	}
}
