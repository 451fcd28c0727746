package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/colormark"
	"github.com/yyyoichi/colormark/internal/imageio"
)

var (
	embedFlags struct {
		Host   string
		Mark   string
		Out    string
		Key    uint64
		Step   float64
		Resize bool
	}
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed a watermark image into a host image",
	Run: func(cmd *cobra.Command, args []string) {
		host, err := imageio.Load(embedFlags.Host)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load host image")
		}
		wm, err := imageio.Load(embedFlags.Mark)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load watermark image")
		}
		if embedFlags.Resize {
			host = imageio.Resize(host, colormark.HostSize, colormark.HostSize)
			wm = imageio.Resize(wm, colormark.WatermarkSize, colormark.WatermarkSize)
		}

		marked, err := colormark.Embed(cmd.Context(), host, wm, embedFlags.Key,
			colormark.WithStepSize(embedFlags.Step))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to embed watermark")
		}
		if err := imageio.Save(embedFlags.Out, marked); err != nil {
			log.Fatal().Err(err).Msg("Failed to save marked image")
		}
		log.Info().Str("output", embedFlags.Out).Msg("Embedded watermark")
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringVarP(&embedFlags.Host, "host", "i", "", "Path to host image (required)")
	embedCmd.MarkFlagRequired("host")
	embedCmd.Flags().StringVarP(&embedFlags.Mark, "watermark", "m", "", "Path to watermark image (required)")
	embedCmd.MarkFlagRequired("watermark")
	embedCmd.Flags().StringVarP(&embedFlags.Out, "output", "o", "marked.png", "Output path for the marked image")
	embedCmd.Flags().Uint64VarP(&embedFlags.Key, "key", "k", 0, "Embedding key")
	embedCmd.Flags().Float64VarP(&embedFlags.Step, "step", "s", 50, "Quantization step size")
	embedCmd.Flags().BoolVar(&embedFlags.Resize, "resize", false, "Resize inputs to the required dimensions")
}
