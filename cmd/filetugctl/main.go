package main

import (
	"os"

	"filetug/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
