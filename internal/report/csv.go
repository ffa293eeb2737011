package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// CSVFormatter formats results as CSV.
type CSVFormatter struct{}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// FormatAnalysis writes one row per top repository.
func (f *CSVFormatter) FormatAnalysis(result *model.AnalysisResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Username", "Repository", "Language", "Stars", "Forks", "Commits", "URL"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	if result != nil {
		for _, r := range result.TopRepositories {
			row := []string{
				result.Username,
				r.Name,
				r.Language,
				strconv.Itoa(r.Stars),
				strconv.Itoa(r.Forks),
				strconv.Itoa(r.Commits),
				r.HTMLURL,
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

// FormatCharts writes one row per chart point and dataset.
func (f *CSVFormatter) FormatCharts(charts []model.ChartData) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Chart", "Dataset", "Label", "Value"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, c := range charts {
		for _, ds := range c.Datasets {
			for i, v := range ds.Data {
				if i >= len(c.Labels) {
					break
				}
				row := []string{c.Name, ds.Label, c.Labels[i], strconv.FormatFloat(v, 'f', -1, 64)}
				if err := w.Write(row); err != nil {
					return "", err
				}
			}
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}
