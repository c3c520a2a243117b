package main

import (
	"fmt"
	"os"

	"github.com/telemstore/telemstore/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "telemstore: %v\n", err)
		os.Exit(1)
	}
}
