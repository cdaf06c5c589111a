package output

import (
	"encoding/json"
)

// JSONFormatter formats reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

// Format generates JSON output; decimals are encoded as strings
func (jf JSONFormatter) Format(report *Report) ([]byte, error) {
	if report.empty() {
		return nil, ErrEmptyReport
	}
	if jf.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
