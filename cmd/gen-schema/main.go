// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Command gen-schema writes the content pack JSON Schema files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cataclysmbn/bnengine/internal/content"
)

func main() {
	out := flag.String("out", "schemas", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, kind := range []string{content.SchemaManifest, content.SchemaDocument} {
		schema, err := content.GenerateSchema(kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s schema: %v\n", kind, err)
			os.Exit(1)
		}
		outPath := filepath.Join(*out, kind+".schema.json")
		if err := os.WriteFile(outPath, schema, 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", outPath)
	}
}
