package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"viewer-backend/internal/backend"
	"viewer-backend/version"
)

var port int

var rootCmd = &cobra.Command{
	Use:   "viewer-backend",
	Short: "Measurement backend for the 3D CAD viewer",
	Long: `viewer-backend connects to a running CAD viewer and serves its
measurement tools. Shapes selected in the viewer are measured here -
distance between two shapes, properties of a single shape, or the angle
between two shapes - and the results are sent back for display.`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return backend.New(port).Run()
	},
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 0, "Port the viewer listens to")
	rootCmd.MarkFlagRequired("port")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
