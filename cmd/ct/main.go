package main

import (
	"os"

	"github.com/mgrude/clashtrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
