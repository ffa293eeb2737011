package model

// ChartKind identifies how a series is meant to be drawn.
type ChartKind string

const (
	ChartBar   ChartKind = "bar"
	ChartLine  ChartKind = "line"
	ChartPie   ChartKind = "pie"
	ChartRadar ChartKind = "radar"
)

// Dataset is one labeled numeric series.
type Dataset struct {
	Label string    `json:"label" yaml:"label"`
	Data  []float64 `json:"data" yaml:"data"`
}

// ChartData is a chart-ready structure: one label per point and one or
// more datasets aligned with the labels.
type ChartData struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     ChartKind `json:"kind" yaml:"kind"`
	Title    string    `json:"title" yaml:"title"`
	XAxis    string    `json:"xAxis,omitempty" yaml:"xAxis,omitempty"`
	YAxis    string    `json:"yAxis,omitempty" yaml:"yAxis,omitempty"`
	Labels   []string  `json:"labels" yaml:"labels"`
	Datasets []Dataset `json:"datasets" yaml:"datasets"`

	// Empty marks a placeholder produced from missing input.
	Empty bool `json:"empty" yaml:"empty"`
}

// Max returns the largest value across all datasets, or 0.
func (c ChartData) Max() float64 {
	var maxVal float64
	for _, ds := range c.Datasets {
		for _, v := range ds.Data {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}
