package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/milk9111/overworld/levels"
)

func main() {
	dir := flag.String("dir", levels.DiskDir, "directory holding scene YAML files")
	flag.Parse()

	failed, err := check(*dir, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// check validates every scene file in dir and prints one line per problem.
// It returns the number of invalid scenes.
func check(dir string, out io.Writer) (int, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return 0, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return 0, fmt.Errorf("scenecheck: no scene files in %s", dir)
	}

	failed := 0
	for _, path := range paths {
		if _, err := levels.LoadFile(path); err != nil {
			failed++
			for _, problem := range flatten(err) {
				fmt.Fprintf(out, "%s: %v\n", path, problem)
			}
			continue
		}
		fmt.Fprintf(out, "%s: ok\n", path)
	}
	return failed, nil
}

// flatten expands errors.Join trees into their leaves, dropping the
// ErrInvalidConfig sentinel that wraps them.
func flatten(err error) []error {
	multi, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range multi.Unwrap() {
		if e == levels.ErrInvalidConfig {
			continue
		}
		out = append(out, flatten(e)...)
	}
	if len(out) == 0 {
		return []error{err}
	}
	return out
}
