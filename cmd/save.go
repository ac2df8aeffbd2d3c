package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/export"
)

// saveFlags are shared by the commands that can write lyrics files.
type saveFlags struct {
	save      bool
	filename  string
	format    string
	dir       string
	overwrite bool
	noLibrary bool
}

func (f *saveFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.save, "save", "s", false, "Save the lyrics to a file")
	cmd.Flags().StringVar(&f.filename, "filename", "", "Output file name without extension (default derived from the result)")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: json or txt (overrides config)")
	cmd.Flags().StringVarP(&f.dir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace an existing file")
	cmd.Flags().BoolVar(&f.noLibrary, "no-library", false, "Do not add saved lyrics to the local library")
}

// exportOptions merges the flags over the configured output settings.
func (f *saveFlags) exportOptions(cfg *config.Config) (export.Options, error) {
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.dir != "" {
		cfg.Output.Dir = f.dir
	}

	opts, err := cfg.ExportOptions()
	if err != nil {
		return export.Options{}, fmt.Errorf("invalid output settings: %w", err)
	}
	opts.Overwrite = f.overwrite
	return opts, nil
}
