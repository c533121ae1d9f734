package main

import (
	"log"

	"github.com/mithrel/sakura/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
