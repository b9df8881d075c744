package ttable

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crillab/ttable/bf"
)

const (
	T = true
	F = false
)

func TestBuildAnd(t *testing.T) {
	tbl, err := Build([]string{"P", "Q"}, []string{"P and Q"})
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	want := []Row{
		{Values: []bool{T, T}, Results: []bool{T}},
		{Values: []bool{T, F}, Results: []bool{F}},
		{Values: []bool{F, T}, Results: []bool{F}},
		{Values: []bool{F, F}, Results: []bool{F}},
	}
	if diff := cmp.Diff(want, tbl.Rows()); diff != "" {
		t.Errorf("Build() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"P", "Q", "P and Q"}, tbl.Columns()); diff != "" {
		t.Errorf("Columns() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestBuildNegation(t *testing.T) {
	tbl, err := Build([]string{"P"}, []string{"P", "not P"})
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	want := []Row{
		{Values: []bool{T}, Results: []bool{T, F}},
		{Values: []bool{F}, Results: []bool{F, T}},
	}
	if diff := cmp.Diff(want, tbl.Rows()); diff != "" {
		t.Errorf("Build() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestBuildImplies(t *testing.T) {
	tbl, err := Build([]string{"P", "Q"}, []string{"P implies Q"})
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	got := make([]bool, tbl.Len())
	for i := range got {
		got[i] = tbl.Row(i).Results[0]
	}
	if diff := cmp.Diff([]bool{T, F, T, T}, got); diff != "" {
		t.Errorf("unexpected results for implication (-want+got):\n%s", diff)
	}
}

func TestBuildParseError(t *testing.T) {
	_, err := Build([]string{"P"}, []string{"P", "P and"})
	var perr *bf.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a parse error, got %v", err)
	}
	if perr.Formula != "P and" {
		t.Errorf("parse error names formula %q, want %q", perr.Formula, "P and")
	}
}

func TestBuildUnknownVariable(t *testing.T) {
	_, err := Build([]string{"P", "Q"}, []string{"P and R"})
	var uerr *UnknownVariableError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected an unknown variable error, got %v", err)
	}
	if uerr.Var != "R" || uerr.Formula != "P and R" {
		t.Errorf("unexpected error %+v", uerr)
	}
}

func TestBuildDuplicateVariable(t *testing.T) {
	if _, err := Build([]string{"P", "Q", "P"}, nil); !errors.Is(err, ErrDuplicateVariable) {
		t.Errorf("expected ErrDuplicateVariable, got %v", err)
	}
}

func TestBuildTooManyVariables(t *testing.T) {
	vars := make([]string, MaxVars+1)
	for i := range vars {
		vars[i] = fmt.Sprintf("x%d", i)
	}
	var terr *TooManyVariablesError
	if _, err := BuildWith(bf.Identifiers, vars, nil); !errors.As(err, &terr) {
		t.Errorf("expected TooManyVariablesError, got %v", err)
	}
}

func TestBuildNoVariable(t *testing.T) {
	tbl, err := Build(nil, nil)
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.Len())
	}
	if r := tbl.Row(0); len(r.Values) != 0 || len(r.Results) != 0 {
		t.Errorf("unexpected row %+v", r)
	}
}

func TestBuildNoFormula(t *testing.T) {
	tbl, err := Build([]string{"P", "Q"}, nil)
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	want := []Row{{Values: []bool{T, T}}, {Values: []bool{T, F}}, {Values: []bool{F, T}}, {Values: []bool{F, F}}}
	if diff := cmp.Diff(want, tbl.Rows()); diff != "" {
		t.Errorf("Build() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"P", "Q"}, tbl.Columns()); diff != "" {
		t.Errorf("Columns() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestBuildAssignments(t *testing.T) {
	letters := []string{"A", "B", "C", "D", "E", "F", "G"}
	for n := 0; n <= len(letters); n++ {
		vars := letters[:n]
		tbl, err := Build(vars, []string{})
		if err != nil {
			t.Fatalf("could not build table over %d vars: %v", n, err)
		}
		if tbl.Len() != 1<<n {
			t.Errorf("expected %d rows over %d vars, got %d", 1<<n, n, tbl.Len())
		}
		seen := make(map[string]bool)
		for i := 0; i < tbl.Len(); i++ {
			key := fmt.Sprint(tbl.Row(i).Values)
			if seen[key] {
				t.Errorf("assignment %s appears twice over %d vars", key, n)
			}
			seen[key] = true
		}
		first, last := tbl.Row(0).Values, tbl.Row(tbl.Len()-1).Values
		for j := 0; j < n; j++ {
			if !first[j] || last[j] {
				t.Errorf("over %d vars, first row should be all true and last all false, got %v and %v", n, first, last)
				break
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	vars := []string{"P", "Q", "R"}
	formulas := []string{"P xor Q", "(P nor R) = Q", "not (P and Q) => R"}
	t1, err := Build(vars, formulas)
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	t2, err := Build(vars, formulas)
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	if diff := cmp.Diff(t1.Rows(), t2.Rows()); diff != "" {
		t.Errorf("two builds differ (-first+second):\n%s", diff)
	}
}

func TestBuildDeMorgan(t *testing.T) {
	tbl, err := Build([]string{"A", "B"}, []string{"not (A and B)", "(not A) or (not B)", "not not A"})
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	for i := 0; i < tbl.Len(); i++ {
		r := tbl.Row(i)
		if r.Results[0] != r.Results[1] {
			t.Errorf("de Morgan's law does not hold for row %v", r)
		}
		if r.Results[2] != r.Values[0] {
			t.Errorf("double negation does not hold for row %v", r)
		}
	}
}

func TestTableImmutable(t *testing.T) {
	tbl, err := Build([]string{"P"}, []string{"P"})
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	tbl.Row(0).Values[0] = false
	tbl.Vars()[0] = "Q"
	tbl.Formulas()[0] = "Q"
	if !tbl.Row(0).Values[0] || tbl.Vars()[0] != "P" || tbl.Formulas()[0] != "P" {
		t.Errorf("table was modified through its accessors")
	}
}

func TestSplit(t *testing.T) {
	got := Split(" P and Q,not P,\n\nP =>\n  Q ,  \n")
	want := []string{"P and Q", "not P", "P =>\n  Q"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestFromText(t *testing.T) {
	tbl, err := FromText(bf.Letters, "Q or P, not R\n")
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	if diff := cmp.Diff([]string{"P", "Q", "R", "Q or P", "not R"}, tbl.Columns()); diff != "" {
		t.Errorf("Columns() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if tbl.Len() != 8 {
		t.Errorf("expected 8 rows, got %d", tbl.Len())
	}
	if _, err := FromText(bf.Letters, " , \n"); !errors.Is(err, ErrNoFormula) {
		t.Errorf("expected ErrNoFormula, got %v", err)
	}
}

func TestFromTextMultiline(t *testing.T) {
	tbl, err := FromText(bf.Letters, "(P and\nQ) implies R,\nnot P\n")
	if err != nil {
		t.Fatalf("could not build table: %v", err)
	}
	if diff := cmp.Diff([]string{"P", "Q", "R", "(P and\nQ) implies R", "not P"}, tbl.Columns()); diff != "" {
		t.Errorf("Columns() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if r := tbl.Row(1); r.Results[0] {
		t.Errorf("expected (P and Q) implies R to be false for P, Q true and R false, got row %v", r)
	}
}

func ExampleFromText() {
	tbl, err := FromText(bf.Letters, "P implies Q")
	if err != nil {
		fmt.Printf("could not build table: %v", err)
		return
	}
	fmt.Println(strings.Join(tbl.Columns(), " | "))
	for _, r := range tbl.Rows() {
		fmt.Println(r.Values, r.Results)
	}
	// Output:
	// P | Q | P implies Q
	// [true true] [true]
	// [true false] [false]
	// [false true] [true]
	// [false false] [true]
}
