package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved build defaults (metadata size, slot count, alignment)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("metadata-max-size: %d\n", viper.GetUint32("metadata-max-size"))
		fmt.Printf("slot-count:        %d\n", viper.GetUint32("slot-count"))
		fmt.Printf("alignment:         %d\n", viper.GetUint32("alignment"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.lpmetadata.yaml)")
	rootCmd.PersistentFlags().Uint32("metadata-max-size", 65536, "bytes reserved per metadata slot")
	rootCmd.PersistentFlags().Uint32("slot-count", 2, "number of primary/backup metadata slot pairs")
	rootCmd.PersistentFlags().Uint32("alignment", 4096, "default block-device alignment in bytes")

	_ = viper.BindPFlag("metadata-max-size", rootCmd.PersistentFlags().Lookup("metadata-max-size"))
	_ = viper.BindPFlag("slot-count", rootCmd.PersistentFlags().Lookup("slot-count"))
	_ = viper.BindPFlag("alignment", rootCmd.PersistentFlags().Lookup("alignment"))

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".lpmetadata")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
	}
	viper.SetEnvPrefix("LPMETADATA")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
