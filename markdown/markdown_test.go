package markdown

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crillab/ttable/bf"
)

var notPTable = strings.Join([]string{
	`| $P$ | $\lnot P$ |`,
	`|:---:|:---------:|`,
	`| T   | F         |`,
	`| F   | T         |`,
	``,
	`: $\lnot P$`,
}, "\n") + "\n"

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "pandoc class",
			src:  "# Title\n\nSome text.\n\n```{.ttable}\nnot P\n```\n\nAfter.\n",
			want: "# Title\n\nSome text.\n\n" + notPTable + "\nAfter.\n",
		},
		{
			name: "info string",
			src:  "```ttable\nnot P\n```\n",
			want: notPTable,
		},
		{
			name: "several classes",
			src:  "```{#id .numberLines .ttable}\nnot P\n```\n",
			want: notPTable,
		},
		{
			name: "tilde fence",
			src:  "~~~~ ttable\nnot P\n~~~~\n",
			want: notPTable,
		},
		{
			name: "no blank lines around",
			src:  "Text\n```ttable\nnot P\n```\nMore\n",
			want: "Text\n\n" + notPTable + "\nMore\n",
		},
		{
			name: "unterminated",
			src:  "Intro\n\n```ttable\nnot P\n",
			want: "Intro\n\n" + notPTable,
		},
		{
			name: "other blocks",
			src:  "```go\nx := 1\n```\n\n    indented\n\n> ```ttable\n> P\n> ```\n",
			want: "```go\nx := 1\n```\n\n    indented\n\n> ```ttable\n> P\n> ```\n",
		},
		{
			name: "not the first word",
			src:  "```text ttable\nnot P\n```\n",
			want: "```text ttable\nnot P\n```\n",
		},
		{
			name: "two blocks",
			src:  "```ttable\nnot P\n```\n\n```ttable\nnot P\n```\n",
			want: notPTable + "\n" + notPTable,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NewFilter("ttable").Filter([]byte(test.src))
			if err != nil {
				t.Fatalf("could not filter source: %v", err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("Filter() returned with unexpected diff (-want+got):\n%s", diff)
			}
		})
	}
}

func TestFilterError(t *testing.T) {
	_, err := NewFilter("ttable").Filter([]byte("```ttable\nP and R, P or\n```\n"))
	var perr *bf.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestFilterKeepGoing(t *testing.T) {
	f := NewFilter("ttable")
	f.KeepGoing = true
	var failed []string
	f.OnError = func(text string, err error) { failed = append(failed, text) }
	src := "```ttable\nP and\n```\n\n```ttable\nnot P\n```\n"
	got, err := f.Filter([]byte(src))
	if err != nil {
		t.Fatalf("could not filter source: %v", err)
	}
	want := "```ttable\nP and\n```\n\n" + notPTable
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Filter() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"P and\n"}, failed); diff != "" {
		t.Errorf("unexpected reported blocks (-want+got):\n%s", diff)
	}
}

func TestFilterUnchanged(t *testing.T) {
	src := []byte("Nothing to see here.\n")
	got, err := NewFilter("ttable").Filter(src)
	if err != nil {
		t.Fatalf("could not filter source: %v", err)
	}
	if string(got) != string(src) {
		t.Errorf("source without truth tables was modified: %q", got)
	}
}

func TestHasClass(t *testing.T) {
	tests := []struct {
		info string
		want bool
	}{
		{"ttable", true},
		{" ttable extra", true},
		{"{.ttable}", true},
		{"{ .ttable }", true},
		{"{.other .ttable}", true},
		{"{ttable}", false},
		{"ttables", false},
		{"", false},
	}
	for _, test := range tests {
		if got := hasClass(test.info, "ttable"); got != test.want {
			t.Errorf("hasClass(%q) = %t, want %t", test.info, got, test.want)
		}
	}
}
