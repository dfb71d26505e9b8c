package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/webshell/internal/cli"
	"github.com/bnema/webshell/internal/cli/styles"
)

var (
	probeSend    []string
	probeTimeout time.Duration
	probeDir     string
)

var probeCmd = &cobra.Command{
	Use:   "probe [url]",
	Short: "Exercise the script bridge in a headless page",
	Long: `Load a page in a headless script host wired to the real bridge, post
the given envelopes and print what the shell would show: toasts, dialogs,
console output and saved downloads.

Without a URL a built-in page is loaded whose native callbacks print
their arguments.

Examples:
  webshell probe --send '{"action":"GET_APP_VERSION","callbackId":"1"}'
  webshell probe --send '{"action":"SHOW_TOAST","data":{"message":"hi"}}'
  webshell probe file:///tmp/page.html --dir /tmp/out`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringArrayVarP(&probeSend, "send", "s", nil, "bridge envelope to post after load (repeatable)")
	probeCmd.Flags().DurationVarP(&probeTimeout, "timeout", "t", 30*time.Second, "give up after this long")
	probeCmd.Flags().StringVarP(&probeDir, "dir", "d", "", "download directory (default: a temporary directory)")
}

func runProbe(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	dir := probeDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "webshell-probe-")
		if err != nil {
			return fmt.Errorf("create download dir: %w", err)
		}
		dir = tmp
	}

	opts := cli.ProbeOptions{
		Envelopes:   probeSend,
		HandlerName: app.Config.Bridge.HandlerName,
		DownloadDir: dir,
		Timeout:     probeTimeout,
		UserAgent:   app.Config.WebKit.UserAgent,
		Build:       app.BuildInfo,
		DelayedWork: app.Config.DelayedWork(),
		Out:         os.Stdout,
	}
	if len(args) == 1 {
		opts.URL = args[0]
	}

	fmt.Println(app.Theme.Subtle.Render(styles.IconFolder + " downloads: " + dir))
	if err := cli.RunProbe(app.Ctx(), opts); err != nil {
		fmt.Println(app.Theme.RenderError(err))
		return err
	}
	return nil
}
