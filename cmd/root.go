// Package cmd implements the command-line interface for sylc.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sylc-player/sylc/color"
	"github.com/sylc-player/sylc/constant"
	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/icon"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/library"
	"github.com/sylc-player/sylc/log"
	"github.com/sylc-player/sylc/query"
	"github.com/sylc-player/sylc/style"
	"github.com/sylc-player/sylc/tui"
	"github.com/sylc-player/sylc/version"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist playback progress to the localized watch history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnPlay, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume playback from the saved position")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for the sylc application.
var rootCmd = &cobra.Command{
	Use:   constant.Sylc + " [file | query]",
	Short: "A stereoscopic-3D-aware media player front-end",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A stereoscopic-3D-aware media player front-end"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		path, err := resolveTarget(args)
		handleErr(err)

		options := tui.Options{
			Path:     path,
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
		}
		handleErr(tui.Run(&options))
	},
}

// resolveTarget turns the positional argument into a playable file: a path
// that exists is played directly, anything else is treated as a library
// search query.
func resolveTarget(args []string) (string, error) {
	if len(args) == 1 {
		if exists, err := filesystem.API().Exists(args[0]); err == nil && exists {
			return args[0], nil
		}

		return pickFromLibrary(args[0])
	}

	q, err := askQuery()
	if err != nil {
		return "", err
	}

	return pickFromLibrary(q)
}

func askQuery() (string, error) {
	input := survey.Input{
		Message: "Search the library:",
		Suggest: func(toComplete string) []string {
			return query.SuggestMany(toComplete)
		},
	}

	var q string
	if err := survey.AskOne(&input, &q, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}

	return q, nil
}

func pickFromLibrary(q string) (string, error) {
	videos, err := library.Search(q)
	if err != nil {
		return "", err
	}

	if len(videos) == 0 {
		all, scanErr := library.Scan()
		if scanErr == nil {
			if closest, ok := library.Closest(q, all).Get(); ok {
				return "", fmt.Errorf("nothing matches %s, did you mean %s?",
					style.Fg(color.Red)(q),
					style.Fg(color.Yellow)(closest.Title),
				)
			}
		}
		return "", fmt.Errorf("nothing matches %s", style.Fg(color.Red)(q))
	}

	if err := query.Remember(q, 1); err != nil {
		log.Warnf("remember query %q: %v", q, err)
	}

	if len(videos) == 1 {
		return videos[0].Path, nil
	}

	titles := lo.Map(videos, func(video library.Video, _ int) string {
		return video.Title
	})

	prompt := survey.Select{
		Message: "Pick a video:",
		Options: titles,
	}

	var index int
	if err := survey.AskOne(&prompt, &index); err != nil {
		return "", err
	}

	return videos[index].Path, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
