// Command umap inspects the pieces of the mapping engine from the shell:
// it lints remap files, runs ad-hoc scalar conversions through the built-in
// registry and lists the registered conversion pairs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "umap:", err)
		os.Exit(1)
	}
}
