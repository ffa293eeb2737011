package main

import (
	"os"

	"github.com/Ishanpathak1/ghanalytics/cmd/ghanalytics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
