package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd runs the API server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "bookstore",
	Short: "Book Store API - authors and books catalog with JWT login",
	Long: `Book Store API serves the authors and books catalog over REST.

Commands:
  bookstore serve      # start the HTTP server (default)
  bookstore migrate    # apply database migrations
  bookstore seed       # create roles and the default users`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// ========================================
		// LOAD ENVIRONMENT VARIABLES
		// ========================================
		// Load từ .env file (development/local)
		// Production sẽ dùng system environment variables
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return Serve()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
