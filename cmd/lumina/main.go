package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Local-first conversational assistant backend",
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using system environment")
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newExportCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
