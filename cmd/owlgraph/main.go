// Package main provides the owlgraph binary: ontology export to Neo4j and
// natural-language querying of the resulting graph.
package main

import (
	"fmt"
	"os"
)

const (
	Version = "0.1.0"
	appName = "owlgraph"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
