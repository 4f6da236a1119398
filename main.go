package main

import (
	"os"

	"github.com/leo/proctmux/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
