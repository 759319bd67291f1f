package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ncobase/qeonaru/cmd/qeonaru/commands"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
