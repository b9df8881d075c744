package bf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Connective is a logical operator of the formula language.
type Connective int

// Available connectives.
const (
	OpNot Connective = iota
	OpAnd
	OpOr
	OpNand
	OpNor
	OpXor
	OpImplies
	OpEq
)

// keywords associates each token of the language with its connective.
var keywords = map[string]Connective{
	"not":     OpNot,
	"-":       OpNot,
	"~":       OpNot,
	"and":     OpAnd,
	"or":      OpOr,
	"nand":    OpNand,
	"nor":     OpNor,
	"xor":     OpXor,
	"!=":      OpXor,
	"implies": OpImplies,
	"=>":      OpImplies,
	"=":       OpEq,
}

// Keyword returns the connective denoted by tok, if any.
func Keyword(tok string) (Connective, bool) {
	c, ok := keywords[tok]
	return c, ok
}

// binary connectives, from lowest to highest priority.
var levels = [][]Connective{
	{OpEq},
	{OpImplies},
	{OpOr, OpNor, OpXor},
	{OpAnd, OpNand},
}

func (c Connective) build(f1, f2 Formula) Formula {
	switch c {
	case OpAnd:
		return And(f1, f2)
	case OpOr:
		return Or(f1, f2)
	case OpNand:
		return Nand(f1, f2)
	case OpNor:
		return Nor(f1, f2)
	case OpXor:
		return Xor(f1, f2)
	case OpImplies:
		return Implies(f1, f2)
	case OpEq:
		return Eq(f1, f2)
	default:
		panic("not a binary connective")
	}
}

// A Vocabulary decides which identifiers are variable names.
// Keywords are never variables.
type Vocabulary struct {
	Name  string
	IsVar func(ident string) bool
}

// Letters only accepts single uppercase letters (A to Z) as variables.
var Letters = &Vocabulary{
	Name: "letters",
	IsVar: func(ident string) bool {
		return len(ident) == 1 && ident[0] >= 'A' && ident[0] <= 'Z'
	},
}

// Identifiers accepts any identifier that is not a keyword: a letter or an
// underscore, followed by letters, digits and underscores.
var Identifiers = &Vocabulary{
	Name:  "identifiers",
	IsVar: isIdent,
}

func isIdent(s string) bool {
	if _, ok := keywords[s]; ok || s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r != '_' && !unicode.IsLetter(r) {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// A Notation associates each connective with its typeset symbol.
type Notation struct {
	Symbols map[Connective]string
	// Ident typesets a variable name. If nil, names are kept as is.
	Ident func(name string) string
	// Space is put between tokens, except after an opening parenthesis,
	// before a closing one and, if TightNot is set, after a negation.
	Space    string
	TightNot bool
}

// LaTeX typesets formulas for a math environment, with the symbols of forall x.
var LaTeX = &Notation{
	Symbols: map[Connective]string{
		OpNot:     `\lnot`,
		OpAnd:     `\land`,
		OpOr:      `\lor`,
		OpNand:    `\uparrow`,
		OpNor:     `\downarrow`,
		OpXor:     `\veebar`,
		OpImplies: `\rightarrow`,
		OpEq:      `\leftrightarrow`,
	},
	Ident: func(name string) string {
		if utf8.RuneCountInString(name) > 1 {
			return `\mathit{` + strings.ReplaceAll(name, "_", `\_`) + `}`
		}
		return name
	},
	Space: " ",
}

// Unicode typesets formulas as plain text.
var Unicode = &Notation{
	Symbols: map[Connective]string{
		OpNot:     "¬",
		OpAnd:     "∧",
		OpOr:      "∨",
		OpNand:    "↑",
		OpNor:     "↓",
		OpXor:     "⊻",
		OpImplies: "→",
		OpEq:      "↔",
	},
	Space:    " ",
	TightNot: true,
}
