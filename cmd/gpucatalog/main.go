package main

import (
	"github.com/gpucatalog/gpucatalog/internal/cli"
)

func main() {
	cli.Execute()
}
