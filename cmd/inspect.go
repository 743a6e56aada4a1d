package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-lpmetadata/internal/fsdetect"
	"github.com/deploymenttheory/go-lpmetadata/pkg/lp"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [super-image]",
	Short: "Parse a super image and describe its geometry, groups, and partitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var logger lp.Logger
	if GetVerbose() {
		logger = lp.DefaultLogger()
	}

	m, err := lp.Open(f, logger)
	if err != nil {
		return fmt.Errorf("reading super image: %w", err)
	}

	if GetOutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}

	ed, err := lp.EditExisting(m)
	if err != nil {
		return fmt.Errorf("rebuilding layout: %w", err)
	}

	if !GetQuiet() {
		fmt.Printf("header major=%d minor=%d flags=0x%x\n", m.Header.MajorVersion, m.Header.MinorVersion, m.Header.Flags)
		fmt.Println("groups:")
		fmt.Print(lp.DescribeGroupUsage(ed))
		fmt.Println("partitions:")
		fmt.Print(lp.DescribePartitions(ed))
	}

	if GetVerbose() {
		det := fsdetect.New()
		for _, p := range m.Partitions {
			extents := m.PartitionExtents(p)
			if len(extents) == 0 || !extents[0].IsLinear() {
				continue
			}
			off := int64(extents[0].TargetData) * 512
			kind, size, err := det.Detect(f, off)
			if err != nil {
				continue
			}
			fmt.Printf("  %s: %s (declared size %d)\n", p.Name.GetName(), kind, size)
		}
	}

	return nil
}
