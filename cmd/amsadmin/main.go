// amsadmin bulk-mutates user records on an AMS instance from a tabular
// mapping of user identifiers to new field values. Each subcommand targets
// one field; the output is a table of rows that failed.
package main

import (
	"errors"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errRowFailures) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
