package bf

import (
	"fmt"
	"sort"
)

// A Formula is a propositional formula over named boolean variables.
type Formula interface {
	String() string
	// Eval returns the truth value of the formula in the given model.
	// The model must bind every variable of the formula.
	Eval(model map[string]bool) bool
	addVars(set map[string]struct{})
}

// Vars returns the sorted, distinct names of the variables used in f.
func Vars(f Formula) []string {
	set := make(map[string]struct{})
	f.addVars(set)
	res := make([]string, 0, len(set))
	for name := range set {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Var generates a named boolean variable in a formula.
func Var(name string) Formula {
	return variable(name)
}

type variable string

func (v variable) String() string { return string(v) }

func (v variable) Eval(model map[string]bool) bool {
	b, ok := model[string(v)]
	if !ok {
		panic(fmt.Errorf("model lacks binding for variable %s", string(v)))
	}
	return b
}

func (v variable) addVars(set map[string]struct{}) { set[string(v)] = struct{}{} }

// Not represents a negation. It negates the given subformula.
func Not(f Formula) Formula {
	return not{f}
}

type not [1]Formula

func (n not) String() string                  { return "not(" + n[0].String() + ")" }
func (n not) Eval(model map[string]bool) bool { return !n[0].Eval(model) }
func (n not) addVars(set map[string]struct{}) { n[0].addVars(set) }

// And generates the conjunction of two subformulas.
func And(f1, f2 Formula) Formula { return and{f1, f2} }

// Or generates the disjunction of two subformulas.
func Or(f1, f2 Formula) Formula { return or{f1, f2} }

// Nand is true unless both subformulas are true.
func Nand(f1, f2 Formula) Formula { return nand{f1, f2} }

// Nor is true only when both subformulas are false.
func Nor(f1, f2 Formula) Formula { return nor{f1, f2} }

// Xor indicates exactly one of the two given subformulas is true.
func Xor(f1, f2 Formula) Formula { return xor{f1, f2} }

// Implies indicates a subformula implies another one.
func Implies(f1, f2 Formula) Formula { return implies{f1, f2} }

// Eq indicates a subformula is equivalent to another one.
func Eq(f1, f2 Formula) Formula { return eq{f1, f2} }

type (
	and     [2]Formula
	or      [2]Formula
	nand    [2]Formula
	nor     [2]Formula
	xor     [2]Formula
	implies [2]Formula
	eq      [2]Formula
)

func binString(name string, f1, f2 Formula) string {
	return name + "(" + f1.String() + ", " + f2.String() + ")"
}

func (a and) String() string     { return binString("and", a[0], a[1]) }
func (o or) String() string      { return binString("or", o[0], o[1]) }
func (n nand) String() string    { return binString("nand", n[0], n[1]) }
func (n nor) String() string     { return binString("nor", n[0], n[1]) }
func (x xor) String() string     { return binString("xor", x[0], x[1]) }
func (i implies) String() string { return binString("implies", i[0], i[1]) }
func (e eq) String() string      { return binString("eq", e[0], e[1]) }

func (a and) Eval(model map[string]bool) bool  { return a[0].Eval(model) && a[1].Eval(model) }
func (o or) Eval(model map[string]bool) bool   { return o[0].Eval(model) || o[1].Eval(model) }
func (n nand) Eval(model map[string]bool) bool { return !(n[0].Eval(model) && n[1].Eval(model)) }
func (n nor) Eval(model map[string]bool) bool  { return !(n[0].Eval(model) || n[1].Eval(model)) }
func (x xor) Eval(model map[string]bool) bool  { return x[0].Eval(model) != x[1].Eval(model) }
func (e eq) Eval(model map[string]bool) bool   { return e[0].Eval(model) == e[1].Eval(model) }

func (i implies) Eval(model map[string]bool) bool {
	return !i[0].Eval(model) || i[1].Eval(model)
}

func (a and) addVars(set map[string]struct{})     { a[0].addVars(set); a[1].addVars(set) }
func (o or) addVars(set map[string]struct{})      { o[0].addVars(set); o[1].addVars(set) }
func (n nand) addVars(set map[string]struct{})    { n[0].addVars(set); n[1].addVars(set) }
func (n nor) addVars(set map[string]struct{})     { n[0].addVars(set); n[1].addVars(set) }
func (x xor) addVars(set map[string]struct{})     { x[0].addVars(set); x[1].addVars(set) }
func (i implies) addVars(set map[string]struct{}) { i[0].addVars(set); i[1].addVars(set) }
func (e eq) addVars(set map[string]struct{})      { e[0].addVars(set); e[1].addVars(set) }
