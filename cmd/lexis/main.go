package main

import "lexis/internal/cli"

func main() {
	cli.Execute()
}
