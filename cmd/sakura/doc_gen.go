//go:build ignore
// +build ignore

package main

import (
	"log"

	sakura "github.com/mithrel/sakura/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	root := sakura.NewRootCmd()

	if err := doc.GenMarkdownTree(root, "./docs/markdown"); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "SAKURA",
		Section: "1",
	}
	if err := doc.GenManTree(root, header, "./docs/man"); err != nil {
		log.Fatal(err)
	}
}
