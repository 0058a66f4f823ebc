// Package main provides the entry point for the listing site builder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "site_builder",
	Short: "Static listing site builder",
	Long:  "site_builder turns a listing spreadsheet into a complete static site: one page per listing, area/tag/price index pages, keyword entry pages, map markers and a sitemap.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
