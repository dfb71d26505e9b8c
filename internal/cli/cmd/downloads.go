package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/webshell/internal/cli/styles"
)

var downloadsLimit int

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "List recent downloads",
	Long:  `Show the download history recorded by the shell, newest first.`,
	RunE:  runDownloads,
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.Flags().IntVarP(&downloadsLimit, "limit", "n", 20, "maximum number of entries")
}

func runDownloads(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	records, err := app.ListDownloadsUC.Execute(app.Ctx(), downloadsLimit)
	if err != nil {
		return err
	}

	fmt.Println(styles.NewDownloadsRenderer(app.Theme).Render(records))
	return nil
}
