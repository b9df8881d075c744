package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"

	"github.com/crillab/ttable/bf"
	"github.com/crillab/ttable/markdown"
	"github.com/crillab/ttable/pandoc"
	"github.com/crillab/ttable/render"
	"github.com/crillab/ttable/ttable"
	"github.com/crillab/ttable/watch"
)

func main() {
	// Logs must never end up in the filtered document.
	flag.Set("logtostderr", "true")
	var (
		md        bool
		inPlace   bool
		watching  bool
		ints      bool
		idents    bool
		keepGoing bool
		glob      string
		outDir    string
		formulas  string
		class     string
	)
	flag.BoolVar(&md, "md", false, "filter Markdown sources rather than a pandoc JSON document")
	flag.StringVar(&glob, "glob", "", "with -md, filter the files matching this pattern (e.g. 'docs/**/*.md')")
	flag.BoolVar(&inPlace, "w", false, "with -md, write results back to the source files")
	flag.StringVar(&outDir, "out", "", "with -md, write results in this directory")
	flag.BoolVar(&watching, "watch", false, "with -md and -glob, filter files again each time they are written")
	flag.StringVar(&formulas, "print", "", fmt.Sprintf("print the truth table of these comma-separated formulas and exit (at most %d variables)", ttable.MaxVars))
	flag.BoolVar(&ints, "ints", false, "display truth values as 1 and 0 rather than T and F")
	flag.BoolVar(&idents, "identifiers", false, "accept any identifier as a variable, not only uppercase letters")
	flag.BoolVar(&keepGoing, "keep-going", false, "leave invalid truth table blocks untouched rather than failing")
	flag.StringVar(&class, "class", pandoc.DefaultClass, "class of the code blocks to replace")
	flag.Parse()
	defer glog.Flush()

	voc := bf.Letters
	if idents {
		voc = bf.Identifiers
	}
	opts := render.DefaultOptions()
	if ints {
		opts.True, opts.False = "1", "0"
	}
	onError := func(text string, err error) {
		glog.Warningf("leaving block %q untouched: %v", text, err)
	}

	switch {
	case formulas != "":
		opts.Notation = bf.Unicode
		if err := printTable(voc, opts, formulas); err != nil {
			fail("could not print truth table: %v", err)
		}
	case md:
		f := markdown.NewFilter(class)
		f.Vocabulary, f.Options, f.KeepGoing, f.OnError = voc, opts, keepGoing, onError
		dst := destination{inPlace: inPlace, outDir: outDir, stdout: os.Stdout}
		if err := runMarkdown(f, dst, glob, watching, flag.Args()); err != nil {
			fail("%v", err)
		}
	default:
		if len(flag.Args()) > 0 {
			glog.V(1).Infof("filtering for output format %s", flag.Arg(0))
		}
		f := pandoc.NewFilter()
		f.Vocabulary, f.Options, f.Class, f.KeepGoing, f.OnError = voc, opts, class, keepGoing, onError
		if err := f.Run(os.Stdin, os.Stdout); err != nil {
			fail("could not filter document: %v", err)
		}
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	glog.Flush()
	os.Exit(1)
}

func printTable(voc *bf.Vocabulary, opts render.Options, formulas string) error {
	t, err := ttable.FromText(voc, formulas)
	if err != nil {
		return err
	}
	return render.Text(os.Stdout, t, opts)
}

func runMarkdown(f *markdown.Filter, dst destination, glob string, watching bool, args []string) error {
	if glob == "" {
		if watching {
			return fmt.Errorf("-watch requires -glob")
		}
		if len(args) == 0 {
			return filterStdin(f, dst)
		}
		return filterFiles(f, dst, args)
	}
	paths, err := globFiles(glob)
	if err != nil {
		return err
	}
	if err := filterFiles(f, dst, paths); err != nil {
		if !watching {
			return err
		}
		glog.Errorf("%v", err)
	}
	if !watching {
		return nil
	}
	w, err := watch.New(glob, watch.DefaultWindow, dst.isOutput, func(paths []string) {
		if err := filterFiles(f, dst, paths); err != nil {
			glog.Errorf("%v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("could not watch %q: %v", glob, err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	glog.Infof("watching %s", glob)
	return w.Run(ctx)
}
