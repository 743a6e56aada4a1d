package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only.
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "lpmetadata",
	Short: "Inspect and build Android Logical Partition (super image) metadata",
	Long: `lpmetadata is a command-line tool for parsing, editing, and
serializing the logical-partition metadata embedded in an Android super
image: a geometry block, a header, and the partition/extent/group/
block-device tables it describes.

Commands:
  inspect    Parse a super image and describe its geometry, groups, and partitions
  build      Construct a fresh super image from a declarative layout file
  resize     Grow or shrink a partition, group, or the block device itself`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
}

// GetVerbose returns the verbose flag value.
func GetVerbose() bool { return verbose }

// GetQuiet returns the quiet flag value.
func GetQuiet() bool { return quiet }

// GetOutputFormat returns the output format.
func GetOutputFormat() string { return outputFormat }
