package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"

	"github.com/crillab/ttable/markdown"
)

// destination tells where filtered Markdown sources are written.
type destination struct {
	inPlace bool
	outDir  string
	stdout  io.Writer
}

// path returns the output path of the source file src, or "" if results go to stdout.
func (d destination) path(src string) string {
	switch {
	case d.inPlace:
		return src
	case d.outDir == "":
		return ""
	case filepath.IsAbs(src):
		return filepath.Join(d.outDir, filepath.Base(src))
	default:
		return filepath.Join(d.outDir, src)
	}
}

// isOutput reports whether path was written by d, so that watching does not
// loop on our own results.
func (d destination) isOutput(path string) bool {
	if d.outDir == "" {
		return false
	}
	rel, err := filepath.Rel(d.outDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (d destination) write(src string, orig, res []byte) error {
	out := d.path(src)
	if out == "" {
		if _, err := d.stdout.Write(res); err != nil {
			return fmt.Errorf("could not write result for %q: %v", src, err)
		}
		return nil
	}
	if d.inPlace && bytes.Equal(orig, res) {
		glog.V(1).Infof("%s: nothing to do", src)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("could not create directory for %q: %v", out, err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(src); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(out, res, mode); err != nil {
		return fmt.Errorf("could not write %q: %v", out, err)
	}
	glog.V(1).Infof("%s: written to %s", src, out)
	return nil
}

func globFiles(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %v", pattern, err)
	}
	if len(paths) == 0 {
		glog.Warningf("no file matches %s", pattern)
	}
	return paths, nil
}

func filterFiles(f *markdown.Filter, dst destination, paths []string) error {
	for _, path := range paths {
		if dst.isOutput(path) {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not open %q: %v", path, err)
		}
		res, err := f.Filter(src)
		if err != nil {
			return fmt.Errorf("could not filter %q: %v", path, err)
		}
		if err := dst.write(path, src, res); err != nil {
			return err
		}
	}
	return nil
}

func filterStdin(f *markdown.Filter, dst destination) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("could not read input: %v", err)
	}
	res, err := f.Filter(src)
	if err != nil {
		return fmt.Errorf("could not filter input: %v", err)
	}
	if _, err := dst.stdout.Write(res); err != nil {
		return fmt.Errorf("could not write result: %v", err)
	}
	return nil
}
