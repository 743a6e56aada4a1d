package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-lpmetadata/pkg/lp"
)

// layoutFile is the declarative input build reads: a device size plus a
// list of groups and partitions to create and size.
type layoutFile struct {
	DeviceSize uint64 `yaml:"device_size"`
	Groups     []struct {
		Name    string `yaml:"name"`
		MaxSize uint64 `yaml:"max_size"`
	} `yaml:"groups"`
	Partitions []struct {
		Name  string `yaml:"name"`
		Group string `yaml:"group"`
		Size  uint64 `yaml:"size"`
	} `yaml:"partitions"`
}

var (
	buildLayoutPath string
	buildOutputPath string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Construct a fresh super image from a declarative layout file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildLayoutPath, "layout", "", "YAML layout file (required)")
	buildCmd.Flags().StringVar(&buildOutputPath, "output-image", "super.img", "path to write the super image")
	_ = buildCmd.MarkFlagRequired("layout")
}

func runBuild() error {
	raw, err := os.ReadFile(buildLayoutPath)
	if err != nil {
		return fmt.Errorf("reading layout file: %w", err)
	}
	var layout layoutFile
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return fmt.Errorf("parsing layout file: %w", err)
	}

	metadataMaxSize := viper.GetUint32("metadata-max-size")
	slotCount := viper.GetUint32("slot-count")

	ed := lp.NewEditor(layout.DeviceSize, metadataMaxSize, slotCount)
	ed.BlockDevices[0].Alignment = viper.GetUint32("alignment")

	for _, g := range layout.Groups {
		if err := ed.AddGroup(g.Name, g.MaxSize); err != nil {
			return fmt.Errorf("adding group %q: %w", g.Name, err)
		}
	}

	for _, p := range layout.Partitions {
		group := p.Group
		if group == "" {
			group = "default"
		}
		if err := ed.AddPartition(p.Name, group, 0); err != nil {
			return fmt.Errorf("adding partition %q: %w", p.Name, err)
		}
		if err := ed.ResizePartition(p.Name, p.Size); err != nil {
			return fmt.Errorf("sizing partition %q: %w", p.Name, err)
		}
	}

	if err := ed.CompactPartitions(); err != nil {
		return fmt.Errorf("compacting layout: %w", err)
	}

	out, err := os.Create(buildOutputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", buildOutputPath, err)
	}
	defer out.Close()

	var logger lp.Logger
	if GetVerbose() {
		logger = lp.DefaultLogger()
	}
	if err := lp.Write(out, ed, logger); err != nil {
		return fmt.Errorf("writing super image: %w", err)
	}

	if !GetQuiet() {
		fmt.Printf("wrote %s\n", buildOutputPath)
	}
	return nil
}
