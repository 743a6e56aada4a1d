package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-lpmetadata/pkg/lp"
)

var (
	resizePartition string
	resizeGroup     string
	resizeDevice    bool
	resizeToBytes   uint64
)

var resizeCmd = &cobra.Command{
	Use:   "resize [super-image]",
	Short: "Grow or shrink a partition, group, or the block device itself",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResize(args[0])
	},
}

func init() {
	rootCmd.AddCommand(resizeCmd)
	resizeCmd.Flags().StringVar(&resizePartition, "partition", "", "partition to resize")
	resizeCmd.Flags().StringVar(&resizeGroup, "group", "", "group to resize (its size cap)")
	resizeCmd.Flags().BoolVar(&resizeDevice, "device", false, "resize the block device itself")
	resizeCmd.Flags().Uint64Var(&resizeToBytes, "to", 0, "new size in bytes (required)")
	_ = resizeCmd.MarkFlagRequired("to")
}

func runResize(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := lp.Open(f, nil)
	if err != nil {
		return fmt.Errorf("reading super image: %w", err)
	}
	ed, err := lp.EditExisting(m)
	if err != nil {
		return fmt.Errorf("rebuilding layout: %w", err)
	}

	switch {
	case resizePartition != "":
		err = ed.ResizePartition(resizePartition, resizeToBytes)
	case resizeGroup != "":
		err = ed.ResizeGroup(resizeGroup, resizeToBytes)
	case resizeDevice:
		err = ed.ResizeBlockDevice(resizeToBytes)
	default:
		return fmt.Errorf("one of --partition, --group, or --device is required")
	}
	if err != nil {
		return fmt.Errorf("resize failed: %w", err)
	}

	var logger lp.Logger
	if GetVerbose() {
		logger = lp.DefaultLogger()
	}
	if err := lp.Write(f, ed, logger); err != nil {
		return fmt.Errorf("writing super image: %w", err)
	}

	if !GetQuiet() {
		fmt.Println("resized")
	}
	return nil
}
