// Package render lays out truth tables as text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/crillab/ttable/bf"
	"github.com/crillab/ttable/ttable"
)

// Options are the display settings of a table.
type Options struct {
	True     string // Token displayed for true values
	False    string // Token displayed for false values
	Notation *bf.Notation
}

// DefaultOptions displays T and F, and typesets formulas in LaTeX.
func DefaultOptions() Options {
	return Options{True: "T", False: "F", Notation: bf.LaTeX}
}

// Value returns the token displaying b.
func (o Options) Value(b bool) string {
	if b {
		return o.True
	}
	return o.False
}

// Headers returns the typeset headers of the columns of t.
func Headers(t *ttable.Table, n *bf.Notation) ([]string, error) {
	cols := t.Columns()
	res := make([]string, len(cols))
	for i, col := range cols {
		h, err := bf.Typeset(n, col)
		if err != nil {
			return nil, err
		}
		res[i] = h
	}
	return res, nil
}

// Caption returns the typeset list of the formulas of t, separated by commas.
func Caption(t *ttable.Table, n *bf.Notation) (string, error) {
	formulas := t.Formulas()
	res := make([]string, len(formulas))
	for i, f := range formulas {
		typeset, err := bf.Typeset(n, f)
		if err != nil {
			return "", err
		}
		res[i] = typeset
	}
	return strings.Join(res, ", "), nil
}

// Cells returns the display tokens of each row of t.
func Cells(t *ttable.Table, opts Options) [][]string {
	res := make([][]string, t.Len())
	for i := range res {
		row := t.Row(i)
		cells := make([]string, 0, len(row.Values)+len(row.Results))
		for _, b := range row.Values {
			cells = append(cells, opts.Value(b))
		}
		for _, b := range row.Results {
			cells = append(cells, opts.Value(b))
		}
		res[i] = cells
	}
	return res
}

// widths returns the display width of each column.
func widths(headers []string, cells [][]string) []int {
	res := make([]int, len(headers))
	for i, h := range headers {
		res[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if w := runewidth.StringWidth(c); w > res[i] {
				res[i] = w
			}
		}
	}
	return res
}

// Text writes t on w as an aligned plain text table, one line per row, with
// the headers underlined by dashes.
//
//	P  Q  P ∧ Q
//	-  -  -----
//	T  T  T
func Text(w io.Writer, t *ttable.Table, opts Options) error {
	headers, err := Headers(t, opts.Notation)
	if err != nil {
		return err
	}
	cells := Cells(t, opts)
	ws := widths(headers, cells)
	dashes := make([]string, len(ws))
	for i, n := range ws {
		dashes[i] = strings.Repeat("-", n)
	}
	lines := append([][]string{headers, dashes}, cells...)
	for _, line := range lines {
		padded := make([]string, len(line))
		for i, c := range line {
			if i == len(line)-1 {
				padded[i] = c
			} else {
				padded[i] = runewidth.FillRight(c, ws[i])
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(padded, "  ")); err != nil {
			return fmt.Errorf("could not write table: %v", err)
		}
	}
	return nil
}

// Markdown writes t on w as a pipe table, with headers in inline math,
// followed by a caption paragraph typesetting all the formulas.
//
//	| $P$ | $Q$ | $P \land Q$ |
//	|:---:|:---:|:-----------:|
//	| T   | T   | T           |
//
//	: $P \land Q$
func Markdown(w io.Writer, t *ttable.Table, opts Options) error {
	headers, err := Headers(t, opts.Notation)
	if err != nil {
		return err
	}
	for i, h := range headers {
		headers[i] = "$" + h + "$"
	}
	caption, err := Caption(t, opts.Notation)
	if err != nil {
		return err
	}
	cells := Cells(t, opts)
	ws := widths(headers, cells)
	delims := make([]string, len(ws))
	for i, n := range ws {
		if n < 3 {
			n = 3
			ws[i] = n
		}
		delims[i] = ":" + strings.Repeat("-", n) + ":"
	}
	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for i, c := range row {
			sb.WriteString(" " + runewidth.FillRight(c, ws[i]) + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	sb.WriteString("|" + strings.Join(delims, "|") + "|\n")
	for _, row := range cells {
		writeRow(row)
	}
	if caption != "" {
		sb.WriteString("\n: $" + caption + "$\n")
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("could not write table: %v", err)
	}
	return nil
}
