package main

import "github.com/kbecker/orwatch/internal/cli"

func main() {
	cli.Execute()
}
