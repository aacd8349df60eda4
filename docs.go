//go:build ignore

// Generates Markdown documentation for the conseq commands into ./docs.
// Run with: go run docs.go
package main

import (
	"fmt"

	"github.com/pjedge/conseq/cmd"
	"github.com/spf13/cobra/doc"
)

func main() {
	if err := doc.GenMarkdownTree(cmd.RootCmd, "./docs"); err != nil {
		fmt.Println(err.Error())
	}
}
