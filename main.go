package main

import (
	"os"

	"github.com/ymatsui/kijun/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
