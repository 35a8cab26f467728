package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sayOutputFile string

var sayCmd = &cobra.Command{
	Use:   "say <text>",
	Short: "Synthesize text to speech",
	Long: `Synthesize text with Krishna's configured voice and write the MP3
audio to a file.

Examples:
  sarathi say "You have the right to work, but never to the fruit of work." -o verse.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runSay,
}

func init() {
	sayCmd.Flags().StringVarP(&sayOutputFile, "output", "o", "speech.mp3", "output file")
}

func runSay(cmd *cobra.Command, args []string) error {
	audio, err := api.Synthesize(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	if err := os.WriteFile(sayOutputFile, audio, 0o644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	fmt.Printf("Wrote %d bytes to %s\n", len(audio), sayOutputFile)
	return nil
}
