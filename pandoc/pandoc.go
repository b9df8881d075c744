// Package pandoc is a pandoc JSON filter replacing truth table code blocks by tables.
//
// Pandoc sends the filter its document as a JSON AST on stdin and reads the
// transformed AST on stdout:
//
//	pandoc --filter ttable doc.md -o doc.pdf
//
// A truth table code block is a code block with the class "ttable":
//
//	```{.ttable}
//	P and Q, P or Q
//	```
//
// Only the nodes involved in the transformation are interpreted; the rest of
// the document is passed through untouched.
package pandoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/crillab/ttable/bf"
	"github.com/crillab/ttable/render"
	"github.com/crillab/ttable/ttable"
)

// DefaultClass is the class of the code blocks that are turned into truth tables.
const DefaultClass = "ttable"

// MinVersion is the oldest pandoc API version whose table layout is supported.
var MinVersion = []int{1, 22}

// A Filter replaces truth table code blocks by tables.
type Filter struct {
	Vocabulary *bf.Vocabulary
	Options    render.Options
	Class      string
	// If KeepGoing is true, blocks that cannot be turned into tables are left
	// untouched and reported to OnError instead of stopping the filter.
	KeepGoing bool
	OnError   func(text string, err error)
}

// NewFilter returns a filter with the default vocabulary, options and class.
func NewFilter() *Filter {
	return &Filter{
		Vocabulary: bf.Letters,
		Options:    render.DefaultOptions(),
		Class:      DefaultClass,
	}
}

// Run reads a JSON document from r, applies the filter and writes the result on w.
func (f *Filter) Run(r io.Reader, w io.Writer) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("could not decode pandoc document: %v", err)
	}
	if _, err := f.Apply(doc); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not encode pandoc document: %v", err)
	}
	return nil
}

// Apply transforms the decoded document doc in place.
// It returns the number of code blocks that were replaced.
func (f *Filter) Apply(doc map[string]interface{}) (int, error) {
	if err := checkVersion(doc["pandoc-api-version"]); err != nil {
		return 0, err
	}
	blocks, ok := doc["blocks"].([]interface{})
	if !ok {
		return 0, errors.New("invalid pandoc document: no blocks")
	}
	w := walker{filter: f}
	if _, err := w.walk(blocks); err != nil {
		return w.nbReplaced, err
	}
	if meta, ok := doc["meta"]; ok {
		if _, err := w.walk(meta); err != nil {
			return w.nbReplaced, err
		}
	}
	return w.nbReplaced, nil
}

func checkVersion(v interface{}) error {
	parts, ok := v.([]interface{})
	if !ok || len(parts) == 0 {
		return errors.New("invalid pandoc document: no pandoc-api-version")
	}
	for i, want := range MinVersion {
		if i >= len(parts) {
			return fmt.Errorf("unsupported pandoc API version %v", parts)
		}
		var n int
		switch num := parts[i].(type) {
		case json.Number:
			n64, err := num.Int64()
			if err != nil {
				return fmt.Errorf("invalid pandoc API version %v: %v", parts, err)
			}
			n = int(n64)
		case float64: // Documents decoded without UseNumber
			n = int(num)
		default:
			return fmt.Errorf("invalid pandoc API version %v", parts)
		}
		if n > want {
			return nil
		}
		if n < want {
			return fmt.Errorf("unsupported pandoc API version %v, need at least %v", parts, MinVersion)
		}
	}
	return nil
}

type walker struct {
	filter     *Filter
	nbReplaced int
}

// walk replaces, at any depth of v, the truth table code blocks.
// It returns the new value of v.
func (w *walker) walk(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case []interface{}:
		for i := range v {
			sub, err := w.walk(v[i])
			if err != nil {
				return nil, err
			}
			v[i] = sub
		}
	case map[string]interface{}:
		if v["t"] == "CodeBlock" {
			return w.codeBlock(v)
		}
		for k := range v {
			sub, err := w.walk(v[k])
			if err != nil {
				return nil, err
			}
			v[k] = sub
		}
	}
	return v, nil
}

func (w *walker) codeBlock(node map[string]interface{}) (interface{}, error) {
	f := w.filter
	attr, text, ok := decodeCodeBlock(node)
	if !ok || !attr.hasClass(f.Class) {
		return node, nil
	}
	t, err := ttable.FromText(f.Vocabulary, text)
	if err == nil {
		var tbl map[string]interface{}
		if tbl, err = newTable(attr.id, t, f.Options); err == nil {
			w.nbReplaced++
			return tbl, nil
		}
	}
	if f.KeepGoing {
		if f.OnError != nil {
			f.OnError(text, err)
		}
		return node, nil
	}
	return nil, fmt.Errorf("could not build truth table for %q: %w", text, err)
}

type attr struct {
	id      string
	classes []string
}

func (a attr) hasClass(c string) bool {
	for _, cl := range a.classes {
		if cl == c {
			return true
		}
	}
	return false
}

// decodeCodeBlock decodes a node of the form
// {"t": "CodeBlock", "c": [[id, [classes...], [[key, value]...]], text]}.
func decodeCodeBlock(node map[string]interface{}) (a attr, text string, ok bool) {
	c, ok := node["c"].([]interface{})
	if !ok || len(c) != 2 {
		return a, "", false
	}
	at, ok := c[0].([]interface{})
	if !ok || len(at) != 3 {
		return a, "", false
	}
	a.id, _ = at[0].(string)
	classes, _ := at[1].([]interface{})
	for _, cl := range classes {
		if s, ok := cl.(string); ok {
			a.classes = append(a.classes, s)
		}
	}
	text, ok = c[1].(string)
	return a, text, ok
}
