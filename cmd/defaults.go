package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default run configuration as YAML",
	Long:  "Print the reference scenario as a config file. Output is written to stdout and can be edited and passed back with --config.",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := marshalRunFile(defaultRunFile())
		if err != nil {
			logrus.Fatalf("Failed to encode defaults: %v", err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			logrus.Fatalf("Failed to write defaults: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}
