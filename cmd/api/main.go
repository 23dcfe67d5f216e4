package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/postkeeper/core/cmd/api/commands"
)

// @title postkeeper API
// @version 1.0
// @description Blog posts kept in a single JSON file

// @license.name MIT

// @host localhost:3001
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:           "postkeeper",
		Short:         "postkeeper blog post server",
		Long:          `postkeeper serves a small CRUD API for blog posts persisted to a single JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewStoreCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
