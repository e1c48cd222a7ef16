package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cadutil",
	Short: "Convert, inspect, and validate DXF/JWW drawings",
	Long:  "cadutil reads DXF and JWW drawings into a shared document model and converts, reports on, or validates them.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}
