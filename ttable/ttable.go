// Package ttable builds the truth tables of propositional formulas.
//
// A table has one column per variable, in the declared order, followed by one
// column per formula, in input order. It has one row per assignment of truth
// values to the variables: the first variable varies slowest and true comes
// before false, so the first row binds every variable to true and the last one
// binds every variable to false.
//
// Building a table over n variables and m formulas evaluates m formulas 2^n
// times; n is bounded by MaxVars.
package ttable

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/crillab/ttable/bf"
)

// MaxVars is the maximum number of variables a table can have.
const MaxVars = 24

var (
	// ErrDuplicateVariable is returned when a variable is declared twice.
	ErrDuplicateVariable = errors.New("duplicate variable")
	// ErrNoFormula is returned by FromText when the text contains no formula.
	ErrNoFormula = errors.New("no formula")
)

// An UnknownVariableError is returned when a formula uses a variable that was not declared.
type UnknownVariableError struct {
	Var     string
	Formula string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %s in formula %q", e.Var, e.Formula)
}

// A TooManyVariablesError is returned when a table would have more than MaxVars variables.
type TooManyVariablesError struct {
	NbVars int
}

func (e *TooManyVariablesError) Error() string {
	return fmt.Sprintf("too many variables: %d (max %d)", e.NbVars, MaxVars)
}

// A Row is a line of a truth table.
type Row struct {
	Values  []bool // Truth value of each variable
	Results []bool // Truth value of each formula
}

// A Table is a complete truth table. It is immutable.
type Table struct {
	vars     []string
	formulas []string
	rows     []Row
}

// Vars returns the variables of the table, in column order.
func (t *Table) Vars() []string {
	return append([]string(nil), t.vars...)
}

// Formulas returns the text of the formulas of the table, in column order.
func (t *Table) Formulas() []string {
	return append([]string(nil), t.formulas...)
}

// Columns returns the headers of the table: its variables followed by its formulas.
func (t *Table) Columns() []string {
	res := make([]string, 0, len(t.vars)+len(t.formulas))
	res = append(res, t.vars...)
	return append(res, t.formulas...)
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the i-th row of the table.
func (t *Table) Row(i int) Row {
	r := t.rows[i]
	return Row{
		Values:  append([]bool(nil), r.Values...),
		Results: append([]bool(nil), r.Results...),
	}
}

// Rows returns a copy of all the rows of the table.
func (t *Table) Rows() []Row {
	res := make([]Row, len(t.rows))
	for i := range t.rows {
		res[i] = t.Row(i)
	}
	return res
}

// Build builds the truth table of the given formulas over the given variables.
// Formulas are parsed with the bf.Letters vocabulary.
func Build(vars []string, formulas []string) (*Table, error) {
	return BuildWith(bf.Letters, vars, formulas)
}

// BuildWith is like Build, but parses formulas with the given vocabulary.
// Every variable used in a formula must appear in vars.
func BuildWith(voc *bf.Vocabulary, vars []string, formulas []string) (*Table, error) {
	parsed, err := parseAll(voc, formulas)
	if err != nil {
		return nil, err
	}
	return build(vars, formulas, parsed)
}

// FromText builds the truth table of the formulas in text, as split by Split.
// The variables of the table are all the variables used in the formulas, in
// lexicographic order.
func FromText(voc *bf.Vocabulary, text string) (*Table, error) {
	formulas := Split(text)
	if len(formulas) == 0 {
		return nil, ErrNoFormula
	}
	parsed, err := parseAll(voc, formulas)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, f := range parsed {
		for _, v := range bf.Vars(f) {
			set[v] = struct{}{}
		}
	}
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return build(vars, formulas, parsed)
}

// Split splits text into formulas. Formulas are separated by commas; a formula
// may span several lines. Surrounding spaces are removed, and empty formulas
// are ignored.
func Split(text string) []string {
	fields := strings.Split(text, ",")
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			res = append(res, f)
		}
	}
	return res
}

func parseAll(voc *bf.Vocabulary, formulas []string) ([]bf.Formula, error) {
	parsed := make([]bf.Formula, len(formulas))
	for i, text := range formulas {
		f, err := bf.ParseString(voc, text)
		if err != nil {
			return nil, err
		}
		parsed[i] = f
	}
	return parsed, nil
}

func build(vars []string, formulas []string, parsed []bf.Formula) (*Table, error) {
	nbVars := len(vars)
	if nbVars > MaxVars {
		return nil, &TooManyVariablesError{NbVars: nbVars}
	}
	declared := make(map[string]bool, nbVars)
	for _, v := range vars {
		if declared[v] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVariable, v)
		}
		declared[v] = true
	}
	for i, f := range parsed {
		for _, v := range bf.Vars(f) {
			if !declared[v] {
				return nil, &UnknownVariableError{Var: v, Formula: formulas[i]}
			}
		}
	}
	nbRows := 1 << nbVars
	t := &Table{
		vars:     append([]string(nil), vars...),
		formulas: make([]string, len(formulas)),
		rows:     make([]Row, nbRows),
	}
	for i, f := range formulas {
		t.formulas[i] = strings.TrimSpace(f)
	}
	model := make(map[string]bool, nbVars)
	for i := 0; i < nbRows; i++ {
		values := make([]bool, nbVars)
		for j, v := range vars {
			// A 0 bit means true, so that counting up lists true before false.
			values[j] = (i>>(nbVars-1-j))&1 == 0
			model[v] = values[j]
		}
		results := make([]bool, len(parsed))
		for k, f := range parsed {
			results[k] = f.Eval(model)
		}
		t.rows[i] = Row{Values: values, Results: results}
	}
	return t, nil
}
