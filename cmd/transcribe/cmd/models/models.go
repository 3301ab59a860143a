package models

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"whisper-transcribe/internal/app/api/whisper_cpp"
	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/config"
)

// Cmd represents the models command
var Cmd = &cobra.Command{
	Use:   "models",
	Short: "List model sizes and whether their whisper.cpp files are present",
	Long: `List the accepted --model sizes, the ggml weight file each one loads with
the whisper_cpp engine, and whether that file exists in the models directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := ""
		if f := cmd.Flag("config"); f != nil {
			configPath = f.Value.String()
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return listModels(cmd.OutOrStdout(), cfg.WhisperCpp.ModelsDir)
	},
}

type modelRow struct {
	size    model.ModelSize
	file    string
	present bool
}

func listModels(w io.Writer, modelsDir string) error {
	engine := whisper_cpp.NewLocalEngine(whisper_cpp.LocalEngineConfig{ModelsDir: modelsDir}, nil, nil)
	rows := lo.Map(model.ModelSizes, func(size model.ModelSize, _ int) modelRow {
		info, err := os.Stat(engine.ModelPath(size))
		return modelRow{
			size:    size,
			file:    whisper_cpp.ModelFileName(size),
			present: err == nil && info.Mode().IsRegular() && info.Size() > 0,
		}
	})

	fmt.Fprintf(w, "Models directory: %s\n", modelsDir)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tFILE\tPRESENT")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.size, row.file, lo.Ternary(row.present, "yes", "no"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	downloaded := lo.CountBy(rows, func(r modelRow) bool { return r.present })
	fmt.Fprintf(w, "%d of %d sizes available locally (default: %s)\n", downloaded, len(rows), model.DefaultModelSize)
	return nil
}
