package main

import (
	"os"

	"github.com/newn79677-coder/PRACTICE-APP/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
