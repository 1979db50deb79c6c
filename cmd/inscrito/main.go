package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmoraes/inscrito/internal/cli"
)

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
