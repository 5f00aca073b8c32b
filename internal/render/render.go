// Package render provides helpers for formatting CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yourorg/calcctl/internal/batch"
)

const (
	tabWriterMinWidth = 0
	tabWriterTabWidth = 2
	tabWriterPadding  = 2
	tabWriterFlags    = 0
)

// JSON writes the supplied value as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Table renders the provided headers and rows via a tabwriter.
func Table(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, tabWriterMinWidth, tabWriterTabWidth, tabWriterPadding, ' ', tabWriterFlags)
	if len(headers) > 0 {
		if err := writeRow(tw, headers); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writeRow(tw, row); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

func writeRow(w io.Writer, columns []string) error {
	if len(columns) == 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		return nil
	}

	line := strings.Join(columns, "\t")
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// resultJSON is the JSON shape for one batch result.
type resultJSON struct {
	Expression string `json:"expression"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ResultsJSON writes batch results as an indented JSON array.
func ResultsJSON(w io.Writer, results []batch.Result) error {
	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		item := resultJSON{Expression: res.Expression}
		if res.Err != nil {
			item.Error = res.Err.Error()
		} else {
			item.Result = res.Value.String()
		}
		out = append(out, item)
	}
	return JSON(w, out)
}

// ResultsTable writes batch results as an EXPRESSION / RESULT table;
// failures render their error in the result column.
func ResultsTable(w io.Writer, results []batch.Result) error {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		value := ""
		if res.Err != nil {
			value = "error: " + res.Err.Error()
		} else {
			value = res.Value.String()
		}
		rows = append(rows, []string{res.Expression, value})
	}
	return Table(w, []string{"EXPRESSION", "RESULT"}, rows)
}

// ResultsPlain writes one value (or error) per line in input order.
func ResultsPlain(w io.Writer, results []batch.Result) error {
	for _, res := range results {
		var err error
		if res.Err != nil {
			_, err = fmt.Fprintf(w, "error: %v\n", res.Err)
		} else {
			_, err = fmt.Fprintln(w, res.Value.String())
		}
		if err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}
