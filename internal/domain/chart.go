package domain

// chartColors is the fixed series palette. Colors are assigned by bucket
// position, so a category keeps its color for as long as first-seen order
// is unchanged.
var chartColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Chart is a render-ready dataset for one distribution.
type Chart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// ChartSet holds the datasets the dashboard draws.
type ChartSet struct {
	Types  Chart `json:"types"`
	States Chart `json:"states"`
}

// BuildChart converts a distribution into parallel label/value/color slices.
func BuildChart(title string, d Distribution) Chart {
	c := Chart{
		Title:  title,
		Labels: make([]string, len(d)),
		Values: make([]int, len(d)),
		Colors: make([]string, len(d)),
	}
	for i, b := range d {
		c.Labels[i] = b.Label
		c.Values[i] = b.Count
		c.Colors[i] = chartColors[i%len(chartColors)]
	}
	return c
}

// BuildCharts returns the type and state charts for an aggregation.
func BuildCharts(a Aggregation) ChartSet {
	return ChartSet{
		Types:  BuildChart("Breweries by Type", a.TypeDistribution),
		States: BuildChart("Breweries by State", a.StateDistribution),
	}
}
