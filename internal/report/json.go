package report

import (
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	Indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: true}
}

// FormatAnalysis formats an analysis result as JSON.
func (f *JSONFormatter) FormatAnalysis(result *model.AnalysisResult) (string, error) {
	return f.marshal(result)
}

// FormatCharts formats chart series as JSON.
func (f *JSONFormatter) FormatCharts(charts []model.ChartData) (string, error) {
	return f.marshal(charts)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// YAMLFormatter formats results as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// FormatAnalysis formats an analysis result as YAML.
func (f *YAMLFormatter) FormatAnalysis(result *model.AnalysisResult) (string, error) {
	data, err := yaml.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatCharts formats chart series as YAML.
func (f *YAMLFormatter) FormatCharts(charts []model.ChartData) (string, error) {
	data, err := yaml.Marshal(charts)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
