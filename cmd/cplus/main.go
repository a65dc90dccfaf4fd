package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Janders1800/C-plus/pkg/translator"
	"github.com/Janders1800/C-plus/pkg/translator/lexer"
	"github.com/Janders1800/C-plus/pkg/translator/scope"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <file1.cp> [file2.cp ...]\n", os.Args[0])
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:]))
}

// run translates each input in order, sharing one known-type set
// across all of them. I/O problems fail the file and move on; the
// forbidden "->" operator aborts the whole run.
func run(paths []string) int {
	types := scope.NewTypeSet()

	exitCode := 0
	for _, inPath := range paths {
		src, err := os.ReadFile(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot read: %s\n", inPath)
			exitCode = 1
			continue
		}

		out, err := translator.Translate(src, types)
		if err != nil {
			var fe *lexer.ForbiddenOperatorError
			if errors.As(err, &fe) {
				fmt.Fprintf(os.Stderr, "C+ error: %s: %v\n", inPath, err)
				return 2
			}
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", inPath, err)
			exitCode = 1
			continue
		}

		outPath := replaceExt(inPath, ".cpp")
		if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write: %s\n", outPath)
			exitCode = 1
			continue
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
	}
	return exitCode
}

// replaceExt swaps the final extension of path for newExt, or appends
// newExt when the last path segment has none. A dot inside a leading
// directory does not count as an extension.
func replaceExt(path, newExt string) string {
	sep := strings.LastIndexAny(path, "/\\")
	dot := strings.LastIndexByte(path, '.')
	if dot == -1 || dot < sep {
		return path + newExt
	}
	return path[:dot] + newExt
}
