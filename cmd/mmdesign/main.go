package main

import "github.com/traeki/mismatch-crispri/internal/cli"

func main() {
	cli.Execute()
}
