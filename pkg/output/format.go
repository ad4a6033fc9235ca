// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iwvelando/moolah/internal/calculate"
	"github.com/iwvelando/moolah/pkg/format"
	"github.com/iwvelando/moolah/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FailedValue is shown in place of a value when a calculation failed.
const FailedValue = "n/a"

// Record is the display form of one result, rounded to the output precision.
type Record struct {
	Name    string            `json:"name"`
	Formula string            `json:"formula"`
	Inputs  map[string]string `json:"inputs,omitempty"`
	Value   string            `json:"value,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Records converts results to their display form.
func Records(results []calculate.Result, precision int) []Record {
	records := make([]Record, 0, len(results))
	for _, r := range results {
		rec := Record{Name: r.Name, Formula: r.Formula, Inputs: r.Inputs}
		if r.Failed() {
			rec.Error = r.Err.Error()
		} else {
			rec.Value = mathutil.Round(r.Value, precision).String()
		}
		records = append(records, rec)
	}
	return records
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []calculate.Result, precision int) {
	p := message.NewPrinter(language.English)

	nameWidth := len("Calculation")
	for _, r := range results {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	_, _ = fmt.Fprintf(w, "%-*s | %-32s | Result\n", nameWidth, "Calculation", "Formula")
	_, _ = fmt.Fprintf(w, "%s | %s | ______\n", strings.Repeat("_", nameWidth), strings.Repeat("_", 32))
	for _, r := range results {
		var value string
		if r.Failed() {
			value = FailedValue + " (" + r.Err.Error() + ")"
		} else {
			value = format.Grouped(mathutil.Round(r.Value, precision))
		}
		_, _ = fmt.Fprintf(w, "%-*s | %-32s | %s\n", nameWidth, r.Name, r.Formula, value)
	}

	succeeded, failed := calculate.Summary(results)
	_, _ = p.Fprintf(w, "\n%d calculations, %d succeeded, %d failed\n", len(results), succeeded, failed)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, results []calculate.Result, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "formula", "inputs", "value", "error"}); err != nil {
		return err
	}
	for _, rec := range Records(results, precision) {
		if err := cw.Write([]string{rec.Name, rec.Formula, joinInputs(rec.Inputs), rec.Value, rec.Error}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the records as an indented JSON array.
func JSONFormat(w io.Writer, results []calculate.Result, precision int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(results, precision))
}

func joinInputs(inputs map[string]string) string {
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+inputs[k])
	}
	return strings.Join(parts, ";")
}
