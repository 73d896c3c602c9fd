// Command licensectl is an operator tool for the partner portal: it fetches
// licenses straight from the licensing API, mints partner API tokens and
// checks plans catalogs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
