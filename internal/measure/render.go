package measure

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ccwc/internal/types"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ValidFormat reports whether format is one Format understands.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// Render produces the wc-style line: counts in display order, then the name.
// An empty name leaves a trailing space.
func Render(result Result, name string) string {
	var b strings.Builder

	for _, k := range result.Kinds() {
		n, _ := result.Get(k)
		b.WriteString(strconv.Itoa(n))
		b.WriteByte(' ')
	}

	b.WriteString(name)

	return b.String()
}

// Report is the JSON shape of a result. Field order follows display order.
type Report struct {
	Name  string `json:"name"`
	Lines *int   `json:"lines,omitempty"`
	Words *int   `json:"words,omitempty"`
	Bytes *int   `json:"bytes,omitempty"`
	Chars *int   `json:"chars,omitempty"`
}

// NewReport converts a result into its JSON shape.
func NewReport(result Result, name string) Report {
	report := Report{Name: name}

	field := func(k types.Kind) *int {
		n, ok := result.Get(k)
		if !ok {
			return nil
		}

		return &n
	}

	report.Lines = field(types.Lines)
	report.Words = field(types.Words)
	report.Bytes = field(types.Bytes)
	report.Chars = field(types.Chars)

	return report
}

// Format renders result in the given output format, without a trailing newline.
func Format(result Result, name, format string) (string, error) {
	switch format {
	case FormatText:
		return Render(result, name), nil

	case FormatJSON:
		data, err := json.Marshal(NewReport(result, name))
		if err != nil {
			return "", fmt.Errorf("JSON encoding error: %w", err)
		}

		return string(data), nil

	case FormatCSV:
		return formatAsCSV(result, name)

	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

func formatAsCSV(result Result, name string) (string, error) {
	records := [][]string{{"measurement", "count"}}

	for _, k := range result.Kinds() {
		n, _ := result.Get(k)
		records = append(records, []string{k.String(), strconv.Itoa(n)})
	}

	records = append(records, []string{"name", name})

	var output strings.Builder

	writer := csv.NewWriter(&output)

	err := writer.WriteAll(records)
	if err != nil {
		return "", fmt.Errorf("CSV write error: %w", err)
	}

	return strings.TrimSuffix(output.String(), "\n"), nil
}
