package main

import (
	"fmt"
	"os"

	"github.com/owenthereal/tilde/cmd/tilde/command"
	"github.com/owenthereal/tilde/tilde"
)

func main() {
	if err := command.Root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", tilde.AppName, err)
		os.Exit(1)
	}
}
