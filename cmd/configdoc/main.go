package main

import "github.com/configdoc/configdoc/internal/cli"

func main() {
	cli.Execute()
}
