package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/webshell/internal/infrastructure/desktop"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Manage the desktop launcher entry",
}

var desktopInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a .desktop entry for this binary",
	RunE:  runDesktopInstall,
}

var desktopRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the installed .desktop entry",
	RunE:  runDesktopRemove,
}

func init() {
	rootCmd.AddCommand(desktopCmd)
	desktopCmd.AddCommand(desktopInstallCmd)
	desktopCmd.AddCommand(desktopRemoveCmd)
}

func runDesktopInstall(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	path, err := desktop.NewLauncher().Install(app.Ctx())
	if err != nil {
		fmt.Println(app.Theme.RenderError(err))
		return err
	}
	fmt.Println(app.Theme.RenderSuccess("installed " + path))
	return nil
}

func runDesktopRemove(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if err := desktop.NewLauncher().Remove(app.Ctx()); err != nil {
		fmt.Println(app.Theme.RenderError(err))
		return err
	}
	path, _ := desktop.DesktopFilePath()
	fmt.Println(app.Theme.RenderSuccess("removed " + path))
	return nil
}
