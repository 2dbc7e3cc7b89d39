// Package cmd implements the command-line interface for sylc.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/sylc-player/sylc/color"
	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/icon"
	"github.com/sylc-player/sylc/stereo"
	"github.com/sylc-player/sylc/style"
	"github.com/sylc-player/sylc/util"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")

	infoCmd.SetOut(os.Stdout)
}

// infoCmd runs the stereo-3D analysis for a file and reports the verdict
// without starting playback.
var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Analyze a video file and display its stereo-3D classification",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		if exists, err := filesystem.API().Exists(path); err != nil || !exists {
			handleErr(fmt.Errorf("no such file: %s", path))
		}

		result := stereo.NewAnalyzer().Analyze(cmd.Context(), path)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(result))
			return
		}

		cmd.Println(style.Bold(util.FileStem(path)))
		cmd.Println()

		if result.Is3D {
			cmd.Printf("%s  %s %s\n",
				icon.Get(icon.Stereo),
				style.Fg(color.Green)("3D"),
				style.Fg(color.Yellow)(strings.ToUpper(string(result.StereoMode))),
			)
		} else {
			cmd.Printf("%s  %s\n", icon.Get(icon.Stereo), style.Faint("2D"))
		}

		if result.HasMVCTrack {
			cmd.Printf("%s  frame-packed MVC track present\n", icon.Get(icon.Success))
		}

		if result.Width > 0 && result.Height > 0 {
			cmd.Printf("%s  %d×%d\n", style.Faint("geometry"), result.Width, result.Height)
		}

		if result.Degraded() {
			cmd.Println()
			cmd.Printf("%s  metadata probing failed, verdict is based on the filename\n", icon.Get(icon.Fail))
			cmd.Println(style.Faint("   " + result.AnalysisError))
		}
	},
}
