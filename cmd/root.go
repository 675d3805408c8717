package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/casegallery/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "casegallery",
	Short: "Browse model reasoning cases as a web gallery",
	Long: `Case Gallery renders a JSON document of reasoning cases (questions,
thinking rounds, code, images and answers) into a tabbed web gallery
with math typesetting, syntax highlighting, an image viewer and a
video carousel. Build it as a static site or serve it live.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
