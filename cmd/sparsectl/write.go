package main

import (
	"encoding/hex"
	"fmt"

	"github.com/joshuapare/sparsekit/imgio"
	"github.com/spf13/cobra"
)

var (
	writeBase string
	writeFill string
)

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVar(&writeBase, "base", "0", "Base address the image is loaded at")
	cmd.Flags().StringVar(&writeFill, "fill", "0", "Fill byte for gaps when saving")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <image> <offset> <hexbytes>",
		Short: "Write bytes into an image at an address",
		Long: `The write command patches an image in place: the hex-encoded bytes
are written starting at offset and the whole image is saved back out.
Writes past the end of the file grow the image, with gaps taking the
fill byte.

Example:
  sparsectl write firmware.bin 0x10 deadbeef
  sparsectl write firmware.bin 4096 00ff --fill 0xff`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	imagePath := args[0]

	base, err := parseAddr(writeBase)
	if err != nil {
		return err
	}
	offset, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(args[2])
	if err != nil {
		return fmt.Errorf("invalid hex data %q: %w", args[2], err)
	}
	if len(data) == 0 {
		return fmt.Errorf("no data to write")
	}
	fill, err := parseByte(writeFill)
	if err != nil {
		return err
	}

	printVerbose("Loading image: %s\n", imagePath)

	m, err := imgio.Load(imagePath, base)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if err := m.Write(offset, data); err != nil {
		return fmt.Errorf("failed to write at 0x%x: %w", offset, err)
	}

	if err := imgio.Save(imagePath, m, fill); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":   imagePath,
			"offset": offset,
			"bytes":  len(data),
		})
	}
	printInfo("Wrote %d bytes at 0x%x in %s\n", len(data), offset, imagePath)
	return nil
}
