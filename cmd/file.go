package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/music"
)

var (
	fileFormat string
	fileSave   saveFlags
)

var fileCmd = &cobra.Command{
	Use:   "file PATH",
	Short: "Print the lyrics of an audio file",
	Long: `Read the title and artist tags of an audio file and print the lyrics.

MP3 (ID3), MP4/M4A, FLAC and OGG files are supported. Files without a
title tag are searched by their file name.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(fileCmd)

	fileCmd.Flags().StringVarP(&fileFormat, "header", "H", "{{.Artist}} - {{.Title}}", "Header template")
	fileSave.register(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	track, err := music.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return lyricsForTrack(cmd, track, fileFormat, &fileSave)
}
