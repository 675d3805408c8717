package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/casegallery/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize casegallery configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the gallery and writes a .casegallery.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
