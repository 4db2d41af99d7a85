package main

import "github.com/andrescamacho/bikesim-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
