package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/sparsekit/dump"
	"github.com/joshuapare/sparsekit/imgio"
	"github.com/joshuapare/sparsekit/sparse"
	"github.com/spf13/cobra"
)

var (
	dumpBase      string
	dumpStart     string
	dumpEndex     string
	dumpWidth     int
	dumpEncoding  string
	dumpNoPreview bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpBase, "base", "0", "Base address the image is loaded at")
	cmd.Flags().StringVar(&dumpStart, "start", "", "First address to dump (default: content start)")
	cmd.Flags().StringVar(&dumpEndex, "endex", "", "Address dumping stops before (default: content endex)")
	cmd.Flags().IntVar(&dumpWidth, "width", dump.DefaultWidth, "Bytes per row")
	cmd.Flags().StringVar(&dumpEncoding, "encoding", "ascii", "Preview encoding: ascii, latin1, utf16le")
	cmd.Flags().BoolVar(&dumpNoPreview, "no-preview", false, "Drop the character preview column")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "Hex dump of a binary image",
		Long: `The dump command prints a hex dump of a binary image. Addresses
outside the occupied content render as "--" gap cells.

Example:
  sparsectl dump firmware.bin
  sparsectl dump firmware.bin --start 0x100 --endex 0x200
  sparsectl dump strings.bin --encoding utf16le`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	imagePath := args[0]

	base, err := parseAddr(dumpBase)
	if err != nil {
		return err
	}
	start := sparse.Open
	if dumpStart != "" {
		if start, err = parseAddr(dumpStart); err != nil {
			return err
		}
	}
	endex := sparse.Open
	if dumpEndex != "" {
		if endex, err = parseAddr(dumpEndex); err != nil {
			return err
		}
	}

	var enc dump.Encoding
	switch dumpEncoding {
	case "ascii":
		enc = dump.ASCII
	case "latin1":
		enc = dump.Latin1
	case "utf16le":
		enc = dump.UTF16LE
	default:
		return fmt.Errorf("unknown encoding %q (want ascii, latin1, or utf16le)", dumpEncoding)
	}

	printVerbose("Loading image: %s\n", imagePath)

	m, err := imgio.Load(imagePath, base)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	return dump.Dump(os.Stdout, m, dump.Options{
		Start:     start,
		Endex:     endex,
		Width:     dumpWidth,
		Encoding:  enc,
		NoPreview: dumpNoPreview,
	})
}
