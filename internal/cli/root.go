// Package cli implements the configdoc command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "configdoc",
	Short: "Generate configuration reference docs from annotated Go structs",
	Long: `configdoc scans a Go source tree for structs carrying configdoc
directives, resolves flattened references between them, and splices generated
markdown tables into marker-delimited regions of target documents.

Annotate a struct with //configdoc:register to make it referenceable, or with
//configdoc:generate target=<file> to request documentation generation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <project>/.configdoc.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
