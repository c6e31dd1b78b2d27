package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storymaker/internal/model/story"
	"storymaker/internal/service/bundle"
)

var (
	generatePrompt      string
	generateScenes      int
	generatePrefix      string
	generateOutlineOnly bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a story bundle from the command line",
	Long: `Run the full generation pipeline once and write the story bundle.

Without --prefix the bundle JSON is printed to stdout. With --prefix it is saved to the
configured storage as <prefix>/story.json, together with one PNG per scene under
<prefix>/images/. The saved bundle can be passed to "storymaker narrate".`,
	Example: `  storymaker generate --prompt "A dragon tale" --scenes 4
  storymaker generate --prompt "A dragon tale" --scenes 4 --prefix runs/dragon`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringVar(&generatePrompt, "prompt", "", "story prompt (required)")
	flags.IntVar(&generateScenes, "scenes", 4, "number of scenes")
	flags.StringVar(&generatePrefix, "prefix", "", "storage prefix; print to stdout when empty")
	flags.BoolVar(&generateOutlineOnly, "outline-only", false, "skip image rendering")
	_ = generateCmd.MarkFlagRequired("prompt")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newStoryService(ctx, cfg)
	if err != nil {
		return err
	}

	req := &story.StoryRequest{Prompt: generatePrompt, SceneCount: generateScenes}
	var resp *story.StoryResponse
	if generateOutlineOnly {
		resp, err = svc.GenerateOutline(ctx, req)
	} else {
		resp, err = svc.GenerateStory(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("generate story: %w", err)
	}

	if generatePrefix == "" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}
	result, err := bundle.Save(ctx, store, generatePrefix, resp)
	if err != nil {
		return err
	}

	log.Info().
		Str("story", result.StoryURL).
		Int("images", len(result.ImageURLs)).
		Msg("story bundle saved")
	fmt.Fprintln(cmd.OutOrStdout(), result.StoryKey)
	return nil
}
