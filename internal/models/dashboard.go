package models

// Snapshot is the sample dashboard payload served by the prediction backend
type Snapshot struct {
	Charts        *Charts   `json:"charts,omitempty"`
	Insights      []string  `json:"insights"`
	Options       *Options  `json:"options,omitempty"`
	Meta          *Meta     `json:"meta,omitempty"`
	SampleProfile Profile   `json:"sample_profile,omitempty"`
}

// Charts holds the series for every chart kind. A nil member means the
// backend sent nothing for that chart.
type Charts struct {
	Scatter    *ScatterSeries    `json:"scatter,omitempty"`
	Pie        *LabeledSeries    `json:"pie,omitempty"`
	Bar        *LabeledSeries    `json:"bar,omitempty"`
	Projection *ProjectionSeries `json:"projection,omitempty"`
	Heatmap    *HeatmapSeries    `json:"heatmap,omitempty"`
}

// ScatterSeries plots income against total expenses per household
type ScatterSeries struct {
	Income        []float64 `json:"income"`
	TotalExpenses []float64 `json:"totalExpenses"`
	CityTier      []string  `json:"cityTier"`
	SavingsPct    []float64 `json:"savingsPct"`
}

// LabeledSeries is a label/value pair list (pie slices, bar categories)
type LabeledSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ProjectionSeries is projected cumulative savings by month
type ProjectionSeries struct {
	Months []float64 `json:"months"`
	Values []float64 `json:"values"`
}

// HeatmapSeries is a square correlation matrix over Labels
type HeatmapSeries struct {
	Labels []string    `json:"labels"`
	Matrix [][]float64 `json:"matrix"`
}

// Options are the choices offered in the form dropdowns
type Options struct {
	Occupations []string `json:"occupations"`
	CityTiers   []string `json:"city_tiers"`
}

// Meta describes the dataset behind a snapshot
type Meta struct {
	Records int `json:"records"`
}

// Trace is a single Plotly trace. Only the fields a given chart kind needs
// are set.
type Trace struct {
	Type       string      `json:"type,omitempty"`
	Mode       string      `json:"mode,omitempty"`
	X          interface{} `json:"x,omitempty"`
	Y          interface{} `json:"y,omitempty"`
	Z          interface{} `json:"z,omitempty"`
	Text       interface{} `json:"text,omitempty"`
	Labels     []string    `json:"labels,omitempty"`
	Values     []float64   `json:"values,omitempty"`
	TextInfo   string      `json:"textinfo,omitempty"`
	Hole       float64     `json:"hole,omitempty"`
	Colorscale string      `json:"colorscale,omitempty"`
	ZMin       *float64    `json:"zmin,omitempty"`
	ZMax       *float64    `json:"zmax,omitempty"`
	Marker     *Marker     `json:"marker,omitempty"`
	Line       *Line       `json:"line,omitempty"`
}

// Marker styles trace points or bars
type Marker struct {
	Color      interface{} `json:"color,omitempty"`
	Colorscale string      `json:"colorscale,omitempty"`
	Size       int         `json:"size,omitempty"`
	ShowScale  bool        `json:"showscale,omitempty"`
	ColorBar   *ColorBar   `json:"colorbar,omitempty"`
}

// ColorBar labels a continuous color scale
type ColorBar struct {
	Title string `json:"title,omitempty"`
}

// Line styles a line trace
type Line struct {
	Color string `json:"color,omitempty"`
}

// Axis configures one chart axis
type Axis struct {
	Title     string `json:"title,omitempty"`
	TickAngle int    `json:"tickangle,omitempty"`
}

// Margin is the plot margin in pixels
type Margin struct {
	L int `json:"l,omitempty"`
	R int `json:"r,omitempty"`
	T int `json:"t,omitempty"`
	B int `json:"b,omitempty"`
}

// ChartLayout defines Plotly layout options
type ChartLayout struct {
	Template     string  `json:"template,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	Margin       *Margin `json:"margin,omitempty"`
}

// Figure is a complete Plotly figure handed to Plotly.react
type Figure struct {
	Data   []Trace     `json:"data"`
	Layout ChartLayout `json:"layout"`
}
