package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whisper-transcribe/cmd/transcribe/cmd/history"
	"whisper-transcribe/cmd/transcribe/cmd/models"
	"whisper-transcribe/cmd/transcribe/cmd/version"
	"whisper-transcribe/internal/app"
	"whisper-transcribe/internal/app/common"
	"whisper-transcribe/internal/app/converter"
	apperrors "whisper-transcribe/internal/app/errors"
	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/config"
)

// newConverter builds the pipeline; tests replace it with fakes.
var newConverter = app.InitializeConverter

type rootOptions struct {
	model      model.ModelSize
	output     string
	engine     string
	language   string
	configPath string
	noProgress bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "transcribe <input>",
		Short: "Transcribe an audio file to text",
		Long: `Transcribe an audio file to text with a speech-recognition model.

- Checks that ffmpeg is available
- Loads the model of the requested size (whisper.cpp or OpenAI)
- Writes the transcript to --output, or to text/<name>.txt by default`,
		Example: `  transcribe interview.m4a
  transcribe -m small -o notes.txt lecture.mp3
  transcribe -e openai -l en call.wav`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd, opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.VarP(newModelSizeValue(model.DefaultModelSize, &opts.model), "model", "m", modelSizeUsage())
	flags.StringVarP(&opts.output, "output", "o", "", "output text file (default text/<input name>.txt)")
	flags.StringVarP(&opts.engine, "engine", "e", "", "recognition engine: whisper_cpp|openai (default from config)")
	flags.StringVarP(&opts.language, "language", "l", "auto", "spoken language code, or auto to detect")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "disable the progress bar")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file (default $"+config.ConfigPathEnv+")")
	persistent.BoolVarP(&opts.verbose, "verbose", "V", false, "verbose output")

	rootCmd.AddCommand(models.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(version.Cmd)

	return rootCmd
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, newRootCmd(), os.Args[1:])
}

func run(ctx context.Context, rootCmd *cobra.Command, args []string) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	stderr := rootCmd.ErrOrStderr()
	apperrors.Report(stderr, err)
	if _, classified := apperrors.KindOf(err); !classified {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.Name())
	}
	return apperrors.ExitCode(err)
}

func runTranscribe(cmd *cobra.Command, opts *rootOptions, input string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.engine != "" {
		cfg.Engine = opts.engine
	}
	language := cfg.Language
	if cmd.Flags().Changed("language") {
		language = opts.language
	}

	logger, err := common.NewLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	conv, err := newConverter(ctx, app.Options{
		Config:         cfg,
		Logger:         logger,
		Progress:       converter.ShouldShowProgress(opts.noProgress),
		ProgressOutput: cmd.ErrOrStderr(),
		Status:         cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil {
			logger.Warn("failed to close converter", zap.Error(cerr))
		}
	}()

	_, err = conv.Transcribe(ctx, model.TranscriptionRequest{
		InputPath:  input,
		Model:      opts.model,
		OutputPath: opts.output,
		Language:   language,
	})

	if cfg.Metrics.Textfile != "" {
		if werr := conv.Metrics().WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			logger.Warn("failed to write metrics textfile", zap.String("path", cfg.Metrics.Textfile), zap.Error(werr))
		}
	}
	return err
}
