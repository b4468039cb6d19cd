package main

import (
	"fmt"

	"github.com/joshuapare/sparsekit/imgio"
	"github.com/spf13/cobra"
)

var (
	fillBase string
	fillGap  string
)

func init() {
	cmd := newFillCmd()
	cmd.Flags().StringVar(&fillBase, "base", "0", "Base address the image is loaded at")
	cmd.Flags().StringVar(&fillGap, "gap-fill", "0", "Fill byte for gaps when saving")
	rootCmd.AddCommand(cmd)
}

func newFillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill <image> <start> <endex> <byte>",
		Short: "Fill an address range with a byte value",
		Long: `The fill command overwrites the range [start, endex) of an image
with a single byte value and saves the image back out.

Example:
  sparsectl fill firmware.bin 0x100 0x200 0xff
  sparsectl fill firmware.bin 0 16 0`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(args)
		},
	}
	return cmd
}

func runFill(args []string) error {
	imagePath := args[0]

	base, err := parseAddr(fillBase)
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
	value, err := parseByte(args[3])
	if err != nil {
		return err
	}
	gapFill, err := parseByte(fillGap)
	if err != nil {
		return err
	}

	printVerbose("Loading image: %s\n", imagePath)

	m, err := imgio.Load(imagePath, base)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if err := m.Fill(start, endex, []byte{value}); err != nil {
		return fmt.Errorf("failed to fill [0x%x, 0x%x): %w", start, endex, err)
	}

	if err := imgio.Save(imagePath, m, gapFill); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":  imagePath,
			"start": start,
			"endex": endex,
			"value": value,
		})
	}
	printInfo("Filled [0x%x, 0x%x) with 0x%02x in %s\n", start, endex, value, imagePath)
	return nil
}
