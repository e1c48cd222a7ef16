package main

import (
	"fmt"
	"os"

	"github.com/f4ah6o/cadutil"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <src> <dst.fgb>",
	Short: "Project a drawing onto the XY plane and write it as FlatGeobuf",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	doc, err := cadutil.Open(src, nil)
	if err != nil {
		return err
	}
	defer doc.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := cadutil.ToFlatGeobuf(f, doc, nil); err != nil {
		return err
	}
	fmt.Printf("exported %s -> %s\n", src, dst)
	return nil
}
