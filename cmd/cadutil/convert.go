package main

import (
	"fmt"

	"github.com/f4ah6o/cadutil"
	"github.com/f4ah6o/cadutil/dxf"
	"github.com/spf13/cobra"
)

var convertGeneration int

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Convert a drawing between DXF and JWW",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().IntVar(&convertGeneration, "dxf-generation", 2007, "DXF generation tag when writing DXF (12, 14, 2000, 2004, 2007, 2010, 2013, 2018)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	opts := &cadutil.SaveOptions{}
	if format, err := cadutil.DetectFormat(dst); err == nil && format == cadutil.FormatDXF {
		gen, err := dxf.GenerationFromTag(convertGeneration)
		if err != nil {
			return err
		}
		writeOpts := dxf.DefaultWriteOptions()
		writeOpts.Generation = gen
		opts.DXFOptions = writeOpts
	}

	if err := cadutil.Convert(src, dst, opts); err != nil {
		return err
	}
	fmt.Printf("converted %s -> %s\n", src, dst)
	return nil
}
