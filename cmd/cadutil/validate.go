package main

import (
	"fmt"
	"os"

	"github.com/f4ah6o/cadutil"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a drawing for semantic issues",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := cadutil.Open(args[0], nil)
	if err != nil {
		return err
	}
	defer doc.Close()

	result := cadutil.Validate(doc)
	for _, issue := range result.Issues {
		fmt.Printf("%-7s %-24s %s\n", issue.Severity, issue.Code, issue.Message)
	}
	if !result.IsValid {
		os.Exit(1)
	}
	return nil
}
