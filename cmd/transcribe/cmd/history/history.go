package history

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"whisper-transcribe/internal/app"
	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/config"
)

var limit int

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent successful transcriptions",
	Long: `Show the most recent successful transcriptions recorded in the history
store configured under history.driver and history.dsn.`,
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

		dao, err := app.InitializeHistory(cmd.Context(), app.Options{Config: cfg})
		if err != nil {
			return err
		}
		if dao == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "History is disabled. Set history.driver and history.dsn in the config file to enable it.")
			return nil
		}
		defer dao.Close()

		records, err := dao.Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		return printRecords(cmd.OutOrStdout(), records)
	},
}

func printRecords(w io.Writer, records []model.Transcription) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No transcriptions recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tENGINE\tMODEL\tCHARS\tTOOK\tINPUT\tOUTPUT")
	for _, r := range records {
		took := (time.Duration(r.ProcessingMs) * time.Millisecond).Round(100 * time.Millisecond)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Engine, r.Model, r.TextLength, took, r.InputPath, r.OutputPath)
	}
	return tw.Flush()
}
