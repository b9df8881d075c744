// Package markdown replaces truth table fenced code blocks in Markdown sources
// by pipe tables.
//
// A block is a truth table block if its info string is the class name
// ("```ttable") or contains it as a pandoc class ("```{.ttable}").
// Only blocks at the top level of the document are replaced: the rest of the
// source, including blocks nested in lists or quotes, is kept byte for byte.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/crillab/ttable/bf"
	"github.com/crillab/ttable/render"
	"github.com/crillab/ttable/ttable"
)

// A Filter rewrites Markdown sources.
type Filter struct {
	Vocabulary *bf.Vocabulary
	Options    render.Options
	Class      string
	// If KeepGoing is true, blocks that cannot be turned into tables are left
	// untouched and reported to OnError instead of stopping the filter.
	KeepGoing bool
	OnError   func(text string, err error)

	md goldmark.Markdown
}

// NewFilter returns a filter recognizing blocks of the given class.
func NewFilter(class string) *Filter {
	return &Filter{
		Vocabulary: bf.Letters,
		Options:    render.DefaultOptions(),
		Class:      class,
		md:         goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// A block is a truth table fenced code block, located in the source.
type block struct {
	start, end int // Byte offsets of the whole block, fences included
	text       string
}

// Filter returns a copy of src where truth table blocks are replaced by tables.
// src is not modified.
func (f *Filter) Filter(src []byte) ([]byte, error) {
	blocks := f.find(src)
	if len(blocks) == 0 {
		return src, nil
	}
	var res bytes.Buffer
	res.Grow(len(src))
	last := 0
	for _, b := range blocks {
		var tbl bytes.Buffer
		t, err := ttable.FromText(f.Vocabulary, b.text)
		if err == nil {
			err = render.Markdown(&tbl, t, f.Options)
		}
		if err != nil {
			if !f.KeepGoing {
				return nil, fmt.Errorf("could not build truth table for %q: %w", b.text, err)
			}
			if f.OnError != nil {
				f.OnError(b.text, err)
			}
			continue
		}
		res.Write(src[last:b.start])
		if b.start > 0 && !blankBefore(src, b.start) {
			res.WriteByte('\n')
		}
		res.Write(tbl.Bytes())
		if b.end < len(src) && !blankAt(src, b.end) {
			res.WriteByte('\n')
		}
		last = b.end
	}
	res.Write(src[last:])
	return res.Bytes(), nil
}

// find returns the top-level truth table blocks of src, in order.
func (f *Filter) find(src []byte) []block {
	if f.md == nil {
		f.md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}
	doc := f.md.Parser().Parse(text.NewReader(src))
	var blocks []block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			continue
		}
		if !hasClass(string(fcb.Info.Segment.Value(src)), f.Class) {
			continue
		}
		blocks = append(blocks, locate(src, fcb))
	}
	return blocks
}

// hasClass reports whether the info string of a fenced block contains class,
// either as its first word or as a ".class" attribute between braces.
func hasClass(info, class string) bool {
	info = strings.TrimSpace(info)
	if strings.HasPrefix(info, "{") {
		attrs := strings.Fields(strings.Trim(info, "{}"))
		for _, attr := range attrs {
			if attr == "."+class {
				return true
			}
		}
		return false
	}
	fields := strings.Fields(info)
	return len(fields) > 0 && fields[0] == class
}

// locate finds the fences around fcb. The opening fence is the line holding its
// info string, the closing fence, if any, is the line after its content.
func locate(src []byte, fcb *ast.FencedCodeBlock) block {
	infoStart := fcb.Info.Segment.Start
	start := bytes.LastIndexByte(src[:infoStart], '\n') + 1
	end := lineEnd(src, infoStart)
	var sb strings.Builder
	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
		end = lineEnd(src, seg.Start)
	}
	fence, size := fenceOf(src[start:])
	if end < len(src) {
		next := lineEnd(src, end)
		if c, n := fenceOf(src[end:next]); c == fence && n >= size && len(bytes.TrimSpace(src[end:next])) == n {
			end = next
		}
	}
	return block{start: start, end: end, text: sb.String()}
}

// lineEnd returns the offset of the beginning of the line after the one at pos.
func lineEnd(src []byte, pos int) int {
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

// fenceOf returns the fence character starting line, after at most 3 spaces
// of indentation, and the number of times it is repeated.
func fenceOf(line []byte) (c byte, n int) {
	i := 0
	for i < len(line) && i < 3 && line[i] == ' ' {
		i++
	}
	if i == len(line) || (line[i] != '`' && line[i] != '~') {
		return 0, 0
	}
	c = line[i]
	for i+n < len(line) && line[i+n] == c {
		n++
	}
	return c, n
}

// blankBefore reports whether the line before pos is empty.
func blankBefore(src []byte, pos int) bool {
	prev := bytes.LastIndexByte(src[:pos-1], '\n') + 1
	return len(bytes.TrimSpace(src[prev:pos])) == 0
}

// blankAt reports whether the line at pos is empty.
func blankAt(src []byte, pos int) bool {
	return len(bytes.TrimSpace(src[pos:lineEnd(src, pos)])) == 0
}
