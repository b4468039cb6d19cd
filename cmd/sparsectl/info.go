package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/sparsekit/imgio"
	"github.com/spf13/cobra"
)

var infoBase string

func init() {
	cmd := newInfoCmd()
	cmd.Flags().StringVar(&infoBase, "base", "0", "Base address the image is loaded at")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Report basic metadata about a binary image",
		Long: `The info command loads a binary image and displays basic metadata
including file size, content span, block count, and contiguity.

Example:
  sparsectl info firmware.bin
  sparsectl info firmware.bin --base 0x8000
  sparsectl info firmware.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	imagePath := args[0]

	base, err := parseAddr(infoBase)
	if err != nil {
		return err
	}

	printVerbose("Loading image: %s\n", imagePath)

	m, err := imgio.Load(imagePath, base)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	info := map[string]interface{}{
		"file":         imagePath,
		"base":         base,
		"contentStart": m.ContentStart(),
		"contentEndex": m.ContentEndex(),
		"contentSize":  m.ContentSize(),
		"blocks":       m.ContentParts(),
		"contiguous":   m.Contiguous(),
	}

	if stat, err := os.Stat(imagePath); err == nil {
		info["fileSize"] = stat.Size()
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(info)
	}

	// Text output
	printInfo("\nImage Information:\n")
	printInfo("  File: %s\n", imagePath)
	if size, ok := info["fileSize"].(int64); ok {
		if size < 1024 {
			printInfo("  Size: %d bytes\n", size)
		} else if size < 1024*1024 {
			printInfo("  Size: %.1f KB\n", float64(size)/1024)
		} else {
			printInfo("  Size: %.1f MB\n", float64(size)/(1024*1024))
		}
	}
	printInfo("  Base: 0x%x\n", base)
	printInfo("  Content span: [0x%x, 0x%x)\n", m.ContentStart(), m.ContentEndex())
	printInfo("  Content size: %d bytes\n", m.ContentSize())
	printInfo("  Blocks: %d\n", m.ContentParts())
	printInfo("  Contiguous: %v\n", m.Contiguous())

	return nil
}
