package main

import (
	"encoding/json"
	"fmt"

	"github.com/f4ah6o/cadutil"
	"github.com/f4ah6o/cadutil/report"
	"github.com/spf13/cobra"
)

var infoLevel string

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Print a structured report about a drawing",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoLevel, "level", "normal", "Detail level: summary, normal, verbose, full")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(infoLevel)
	if err != nil {
		return err
	}

	doc, err := cadutil.Open(args[0], nil)
	if err != nil {
		return err
	}
	defer doc.Close()

	format, err := cadutil.DetectFormat(args[0])
	if err != nil {
		return err
	}

	r := cadutil.Info(doc, string(format), "", level)
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseLevel(s string) (report.Level, error) {
	switch s {
	case "summary":
		return report.Summary, nil
	case "normal":
		return report.Normal, nil
	case "verbose":
		return report.Verbose, nil
	case "full":
		return report.Full, nil
	default:
		return 0, fmt.Errorf("cadutil: unknown detail level %q", s)
	}
}
