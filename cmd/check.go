// Package cmd implements the command-line interface for sylc.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sylc-player/sylc/color"
	"github.com/sylc-player/sylc/ffmpeg"
	"github.com/sylc-player/sylc/icon"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/style"
)

// requiredTools lists the external binaries playback depends on. mpv drives
// the video output, ffprobe feeds the stereo classifier and ffmpeg extracts
// scrub previews.
var requiredTools = []string{"mpv", "ffprobe", "ffmpeg"}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// CheckDependencies verifies the availability of required system dependencies
// and exits with a diagnostic box when one is missing or cannot load.
func CheckDependencies() {
	for _, tool := range requiredTools {
		path, err := resolveTool(tool)
		if err != nil {
			printMissingDependencyError(tool, err)
			os.Exit(1)
		}

		if err := ffmpeg.DefaultRuntimeProbe().Check(path); err != nil {
			printMissingDependencyError(tool, err)
			os.Exit(1)
		}
	}
}

func resolveTool(tool string) (string, error) {
	if tool == "mpv" {
		if override := viper.GetString(key.PlayerPath); override != "" {
			tool = override
		}
	}

	return ffmpeg.Resolve(tool)
}

func printMissingDependencyError(dep string, cause error) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = fmt.Sprintf("brew install %s", suggestedPackage(dep))
	case "linux":
		installCmd = fmt.Sprintf("sudo apt install %s", suggestedPackage(dep)) // Generic, maybe check distro
	case "windows":
		installCmd = fmt.Sprintf("scoop install %s", suggestedPackage(dep))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))

	var body string
	var missing *ffmpeg.MissingRuntimeError
	if errors.As(cause, &missing) {
		body = style.New().Foreground(style.Text).Render(fmt.Sprintf("'%s' is installed but cannot load: %s", dep, cause))
	} else {
		body = style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))
	}

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

// suggestedPackage maps a tool to the package that ships it. ffprobe is
// bundled with ffmpeg on every platform.
func suggestedPackage(dep string) string {
	if dep == "ffprobe" {
		return "ffmpeg"
	}

	return dep
}

// checkCmd reports the resolution status of every external dependency.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the availability of external dependencies",
	Run: func(cmd *cobra.Command, args []string) {
		ok := true

		for _, tool := range requiredTools {
			path, err := resolveTool(tool)
			if err == nil {
				err = ffmpeg.DefaultRuntimeProbe().Check(path)
			}

			if err != nil {
				ok = false
				fmt.Printf("%s %s: %s\n", icon.Get(icon.Fail), style.Bold(tool), style.Fg(color.Red)(err.Error()))
				continue
			}

			fmt.Printf("%s %s: %s\n", icon.Get(icon.Success), style.Bold(tool), style.Faint(path))
		}

		if !ok {
			os.Exit(1)
		}
	},
}
