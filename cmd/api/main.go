package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version se sobreescribe en build: -ldflags "-X main.version=1.2.3"
var version = "dev"

// @title MedTracker API
// @version 1.0
// @description Registro de medicamentos, tomas y notas médicas con cálculo de adherencia.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:          "medtracker",
		Short:        "Medication adherence tracking API",
		SilenceUsage: true,
		// Sin subcomando => serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(drugInfoCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
