package pandoc

import (
	"github.com/crillab/ttable/render"
	"github.com/crillab/ttable/ttable"
)

// Constructors for the subset of the pandoc AST (API 1.22 and later) used to
// represent tables.

func node(tag string, content interface{}) map[string]interface{} {
	return map[string]interface{}{"t": tag, "c": content}
}

func tag(name string) map[string]interface{} {
	return map[string]interface{}{"t": name}
}

func emptyAttr(id string) []interface{} {
	return []interface{}{id, []interface{}{}, []interface{}{}}
}

func str(s string) map[string]interface{} {
	return node("Str", s)
}

func inlineMath(latex string) map[string]interface{} {
	return node("Math", []interface{}{tag("InlineMath"), latex})
}

func plain(inlines ...interface{}) map[string]interface{} {
	return node("Plain", inlines)
}

func cell(blocks ...interface{}) []interface{} {
	return []interface{}{emptyAttr(""), tag("AlignDefault"), 1, 1, blocks}
}

func row(cells []interface{}) []interface{} {
	return []interface{}{emptyAttr(""), cells}
}

// newTable returns a Table block for t, with typeset headers and caption.
func newTable(id string, t *ttable.Table, opts render.Options) (map[string]interface{}, error) {
	headers, err := render.Headers(t, opts.Notation)
	if err != nil {
		return nil, err
	}
	caption, err := render.Caption(t, opts.Notation)
	if err != nil {
		return nil, err
	}
	colSpecs := make([]interface{}, len(headers))
	headCells := make([]interface{}, len(headers))
	for i, h := range headers {
		colSpecs[i] = []interface{}{tag("AlignCenter"), tag("ColWidthDefault")}
		headCells[i] = cell(plain(inlineMath(h)))
	}
	cells := render.Cells(t, opts)
	bodyRows := make([]interface{}, len(cells))
	for i, line := range cells {
		rowCells := make([]interface{}, len(line))
		for j, c := range line {
			rowCells[j] = cell(plain(str(c)))
		}
		bodyRows[i] = row(rowCells)
	}
	return node("Table", []interface{}{
		emptyAttr(id),
		[]interface{}{nil, []interface{}{plain(inlineMath(caption))}},
		colSpecs,
		[]interface{}{emptyAttr(""), []interface{}{row(headCells)}},
		[]interface{}{[]interface{}{emptyAttr(""), 0, []interface{}{}, bodyRows}},
		[]interface{}{emptyAttr(""), []interface{}{}},
	}), nil
}
