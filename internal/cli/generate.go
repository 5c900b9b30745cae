package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/site"
	"github.com/jepemo/mystuff/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate derived artifacts from the data directory",
}

var (
	generateWebOutput string
	generateWebForce  bool
)

var generateWebCmd = &cobra.Command{
	Use:   "web",
	Short: "Generate a static website",
	Long: `Renders a static site from the data directory: an index page, the link
collection, and the learning lessons converted to HTML. Site settings come
from generate.web in config.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		webCfg := getDataConfig().Generate.Web

		output := generateWebOutput
		if output == "" {
			output = webCfg.Output
		}
		if output == "" {
			output = "site"
		}

		if entries, err := os.ReadDir(output); err == nil && len(entries) > 0 && !generateWebForce {
			if !promptForConfirm(fmt.Sprintf("Output directory %s is not empty. Overwrite?", output)) {
				return fmt.Errorf("output directory not empty: %s (use --force)", output)
			}
		}

		gen := &site.Generator{
			DataDir: getDataDir(),
			Config:  webCfg,
			Client:  &http.Client{Timeout: 30 * time.Second},
			Logf: func(format string, args ...interface{}) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			},
		}
		if err := gen.Generate(output); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Site generated at %s", ui.FilePath(output)))
		return nil
	},
}

func init() {
	generateWebCmd.Flags().StringVarP(&generateWebOutput, "output", "o", "", "Output directory (defaults to generate.web.output or ./site)")
	generateWebCmd.Flags().BoolVarP(&generateWebForce, "force", "f", false, "Overwrite a non-empty output directory")

	generateCmd.AddCommand(generateWebCmd)
	rootCmd.AddCommand(generateCmd)
}
