package main

import "github.com/tendertools/tender-autofill/internal/cli"

func main() {
	cli.Execute()
}
