package main

import (
	"fmt"

	"github.com/joshuapare/sparsekit/imgio"
	"github.com/spf13/cobra"
)

var (
	extractBase string
	extractFill string
)

func init() {
	cmd := newExtractCmd()
	cmd.Flags().StringVar(&extractBase, "base", "0", "Base address the image is loaded at")
	cmd.Flags().StringVar(&extractFill, "fill", "0", "Fill byte for gaps in the extracted range")
	rootCmd.AddCommand(cmd)
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image> <start> <endex> <output>",
		Short: "Extract an address range into a new image file",
		Long: `The extract command copies the range [start, endex) of an image
into a new flat file, substituting the fill byte for gaps.

Example:
  sparsectl extract firmware.bin 0x100 0x200 slice.bin
  sparsectl extract firmware.bin 0 4096 head.bin --fill 0xff`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args)
		},
	}
	return cmd
}

func runExtract(args []string) error {
	imagePath, outPath := args[0], args[3]

	base, err := parseAddr(extractBase)
	if err != nil {
		return err
	}
	start, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	endex, err := parseAddr(args[2])
	if err != nil {
		return err
	}
	fill, err := parseByte(extractFill)
	if err != nil {
		return err
	}

	printVerbose("Loading image: %s\n", imagePath)

	m, err := imgio.Load(imagePath, base)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if err := imgio.SaveRange(outPath, m, start, endex, fill); err != nil {
		return fmt.Errorf("failed to extract range: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"input":  imagePath,
			"output": outPath,
			"start":  start,
			"endex":  endex,
			"bytes":  endex - start,
		})
	}
	printInfo("Extracted [0x%x, 0x%x) to %s (%d bytes)\n", start, endex, outPath, endex-start)
	return nil
}
