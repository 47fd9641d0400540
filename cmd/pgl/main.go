package main

import (
	"fmt"
	"os"

	"github.com/phytogl/phytogl/internal/commands"
	"github.com/phytogl/phytogl/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := commands.NewApp(cfg).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
