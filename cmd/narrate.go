package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storytools/providers"
	"storymaker/internal/service/bundle"
	"storymaker/internal/service/narration"
)

var (
	narrateFile   string
	narrateKey    string
	narratePrefix string
	narrateForce  bool
)

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Synthesize scene narration audio for a story bundle",
	Long: `Read a story bundle, synthesize every scene narration with the TTS provider, and upload
<prefix>/audio/scene-NN.mp3 plus <prefix>/audio/manifest.json to the configured storage.

The bundle comes from a local file (--file) or a storage key (--key). Audio that already
exists is reused unless --force is given. Both bundle shapes are accepted: the current
{story, images, generatedAt} and the legacy {metadata, images}.`,
	Example: `  storymaker narrate --key runs/dragon/story.json
  storymaker narrate --file story-output.json --prefix runs/dragon --force`,
	RunE: runNarrate,
}

func init() {
	rootCmd.AddCommand(narrateCmd)

	flags := narrateCmd.Flags()
	flags.StringVarP(&narrateFile, "file", "f", "", "story bundle JSON file")
	flags.StringVarP(&narrateKey, "key", "k", "", "story bundle storage key")
	flags.StringVar(&narratePrefix, "prefix", "", "storage prefix for audio (default: directory of --key)")
	flags.BoolVar(&narrateForce, "force", false, "re-synthesize audio that already exists")
	flags.Float64("speed", 1.0, "speech speed ratio")
	flags.String("voice", "", "TTS voice type")
	narrateCmd.MarkFlagsMutuallyExclusive("file", "key")
	narrateCmd.MarkFlagsOneRequired("file", "key")

	_ = viper.BindPFlag("tts.speed_ratio", flags.Lookup("speed"))
	_ = viper.BindPFlag("tts.voice_type", flags.Lookup("voice"))
}

func runNarrate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	var resp *story.StoryResponse
	if narrateFile != "" {
		f, err := os.Open(narrateFile)
		if err != nil {
			return fmt.Errorf("open bundle: %w", err)
		}
		defer f.Close()
		resp, err = bundle.Decode(f)
		if err != nil {
			return err
		}
	} else {
		resp, err = bundle.Load(ctx, store, narrateKey)
		if err != nil {
			return err
		}
	}

	prefix := narratePrefix
	if prefix == "" && narrateKey != "" {
		prefix = path.Dir(narrateKey)
		if prefix == "." {
			prefix = ""
		}
	}

	tts, voice, err := providers.NewTTSProvider(&cfg.TTS)
	if err != nil {
		return fmt.Errorf("failed to create tts provider: %w", err)
	}

	svc := narration.NewNarrationService(tts, store, voice)
	manifest, err := svc.Narrate(ctx, resp, narration.Options{
		Prefix:     prefix,
		Force:      narrateForce,
		SpeedRatio: cfg.TTS.SpeedRatio,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("manifest", bundle.ManifestKey(prefix)).
		Int("tracks", len(manifest.Tracks)).
		Msg("narration finished")
	fmt.Fprintln(cmd.OutOrStdout(), bundle.ManifestKey(prefix))
	return nil
}
