package main

import (
	"fmt"
	"os"

	"whisper-transcribe/cmd/transcribe/cmd"
	"whisper-transcribe/internal/config"

	// Import engines to register them
	_ "whisper-transcribe/internal/app/api/openai/whisper"
	_ "whisper-transcribe/internal/app/api/whisper_cpp"
)

func main() {
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	os.Exit(cmd.Execute())
}
