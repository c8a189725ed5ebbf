package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/jpegsim-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[jpegsim] error: %v\n", err)
		os.Exit(1)
	}
}
