// Package bf parses and evaluates propositional formulas written with a small
// keyword vocabulary, as found in logic course notes.
//
// Formulas are built from variables and the following connectives:
//
//	not, -, ~     negation
//	and           conjunction
//	nand          negated conjunction
//	or            disjunction
//	nor           negated disjunction
//	xor, !=       exclusive or
//	implies, =>   material implication
//	=             biconditional
//
// For example, the following formula:
//
//	not (P and Q) = (not P or not Q)
//
// can be parsed with
//
//	f, err := ParseString(Letters, "not (P and Q) = (not P or not Q)")
//
// or built directly with
//
//	f := Eq(Not(And(Var("P"), Var("Q"))), Or(Not(Var("P")), Not(Var("Q"))))
//
// A formula is evaluated against a model binding every variable it uses:
//
//	f.Eval(map[string]bool{"P": true, "Q": false}) // true
//
// Formula text can also be typeset, token by token, with a Notation such as
// LaTeX ("\lnot (P \land Q) \leftrightarrow ...") or Unicode ("¬(P ∧ Q) ↔ ...").
package bf
