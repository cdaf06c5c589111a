package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}

	data, err := marshal(compSet)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatComparison renders compSet as table (also console/text), csv or json
func FormatComparison(compSet *ComparisonSet, format string) (string, error) {
	switch format {
	case "table", "console", "text", "":
		tf := &TableFormatter{}
		return tf.Format(compSet), nil
	case "csv":
		cf := &CSVFormatter{}
		return cf.Format(compSet)
	case "json":
		jf := &JSONFormatter{Pretty: true}
		return jf.Format(compSet)
	}
	return "", fmt.Errorf("unsupported comparison format %q (use table, csv or json)", format)
}
