// Package charts turns snapshot series into Plotly figures. Every figure is
// complete; the browser replaces the previous chart with Plotly.react.
package charts

import "fincast/internal/models"

// Kind names a chart and its mount point on the dashboard
type Kind string

const (
	Scatter    Kind = "scatter"
	Pie        Kind = "pie"
	Bar        Kind = "bar"
	Projection Kind = "projection"
	Heatmap    Kind = "heatmap"
)

// Kinds lists the charts in page order
var Kinds = []Kind{Scatter, Pie, Bar, Projection, Heatmap}

// MountID is the DOM id of the panel holding the chart
func (k Kind) MountID() string {
	switch k {
	case Scatter:
		return "scatter-income-expenses"
	case Pie:
		return "pie-expenses"
	case Bar:
		return "bar-occupation-expense"
	case Projection:
		return "line-projection"
	case Heatmap:
		return "heatmap-corr"
	default:
		return ""
	}
}

// ParseKind maps a chart name from a URL to a Kind
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Rendered is the outcome of rendering one chart. Exactly one of Figure or
// Placeholder is set.
type Rendered struct {
	Kind        Kind
	Figure      *models.Figure
	Placeholder string
}

// MountID is the DOM id of the rendered chart's panel
func (r Rendered) MountID() string {
	return r.Kind.MountID()
}

const (
	noExpenseColumns = "No expense columns detected."
	noNumericColumns = "No numeric columns for heatmap."
)

// Render renders every chart present in c. Charts with no data are left out
// so their mounts keep whatever they show.
func Render(c *models.Charts) []Rendered {
	if c == nil {
		return nil
	}

	var out []Rendered
	for _, k := range Kinds {
		if r, ok := RenderKind(c, k); ok {
			out = append(out, r)
		}
	}
	return out
}

// RenderKind renders a single chart kind. ok is false when there is no data
// for it.
func RenderKind(c *models.Charts, k Kind) (Rendered, bool) {
	if c == nil {
		return Rendered{}, false
	}
	switch k {
	case Scatter:
		return renderScatter(c.Scatter)
	case Pie:
		return renderPie(c.Pie)
	case Bar:
		return renderBar(c.Bar)
	case Projection:
		return renderProjection(c.Projection)
	case Heatmap:
		return renderHeatmap(c.Heatmap)
	default:
		return Rendered{}, false
	}
}

func darkLayout() models.ChartLayout {
	return models.ChartLayout{Template: "plotly_dark"}
}

func renderScatter(d *models.ScatterSeries) (Rendered, bool) {
	if d == nil {
		return Rendered{}, false
	}

	layout := darkLayout()
	layout.PaperBGColor = "rgba(0,0,0,0)"
	layout.PlotBGColor = "rgba(0,0,0,0)"
	layout.XAxis = &models.Axis{Title: "Income (₹)"}
	layout.YAxis = &models.Axis{Title: "Total Expenses (₹)"}
	layout.Margin = &models.Margin{L: 50, R: 10, T: 10, B: 40}

	fig := &models.Figure{
		Data: []models.Trace{{
			Type: "scatter",
			Mode: "markers",
			X:    d.Income,
			Y:    d.TotalExpenses,
			Text: d.CityTier,
			Marker: &models.Marker{
				Color:      d.SavingsPct,
				Colorscale: "Turbo",
				Size:       10,
				ShowScale:  true,
				ColorBar:   &models.ColorBar{Title: "Savings %"},
			},
		}},
		Layout: layout,
	}
	return Rendered{Kind: Scatter, Figure: fig}, true
}

func renderPie(d *models.LabeledSeries) (Rendered, bool) {
	if d == nil {
		return Rendered{}, false
	}
	if len(d.Labels) == 0 {
		return Rendered{Kind: Pie, Placeholder: noExpenseColumns}, true
	}

	layout := darkLayout()
	layout.Margin = &models.Margin{T: 10, B: 10}

	fig := &models.Figure{
		Data: []models.Trace{{
			Type:     "pie",
			Labels:   d.Labels,
			Values:   d.Values,
			TextInfo: "label+percent",
			Hole:     0.35,
		}},
		Layout: layout,
	}
	return Rendered{Kind: Pie, Figure: fig}, true
}

func renderBar(d *models.LabeledSeries) (Rendered, bool) {
	if d == nil {
		return Rendered{}, false
	}

	layout := darkLayout()
	layout.Margin = &models.Margin{B: 80, T: 10}
	layout.XAxis = &models.Axis{TickAngle: -35}
	layout.YAxis = &models.Axis{Title: "Avg Total Expenses (₹)"}

	fig := &models.Figure{
		Data: []models.Trace{{
			Type:   "bar",
			X:      d.Labels,
			Y:      d.Values,
			Marker: &models.Marker{Color: "#25b3ff"},
		}},
		Layout: layout,
	}
	return Rendered{Kind: Bar, Figure: fig}, true
}

func renderProjection(d *models.ProjectionSeries) (Rendered, bool) {
	if d == nil {
		return Rendered{}, false
	}

	layout := darkLayout()
	layout.XAxis = &models.Axis{Title: "Month"}
	layout.YAxis = &models.Axis{Title: "Projected Savings (₹)"}
	layout.Margin = &models.Margin{T: 10, L: 60, R: 20, B: 40}

	fig := &models.Figure{
		Data: []models.Trace{{
			Type:   "scatter",
			Mode:   "lines+markers",
			X:      d.Months,
			Y:      d.Values,
			Line:   &models.Line{Color: "#0af5ff"},
			Marker: &models.Marker{Color: "#25b3ff"},
		}},
		Layout: layout,
	}
	return Rendered{Kind: Projection, Figure: fig}, true
}

func renderHeatmap(d *models.HeatmapSeries) (Rendered, bool) {
	if d == nil {
		return Rendered{}, false
	}
	if len(d.Labels) == 0 {
		return Rendered{Kind: Heatmap, Placeholder: noNumericColumns}, true
	}

	zmin, zmax := -1.0, 1.0
	layout := darkLayout()
	layout.Margin = &models.Margin{T: 10, B: 40}

	fig := &models.Figure{
		Data: []models.Trace{{
			Type:       "heatmap",
			Z:          d.Matrix,
			X:          d.Labels,
			Y:          d.Labels,
			Colorscale: "RdBu",
			ZMin:       &zmin,
			ZMax:       &zmax,
		}},
		Layout: layout,
	}
	return Rendered{Kind: Heatmap, Figure: fig}, true
}
