package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/colormark"
	"github.com/yyyoichi/colormark/internal/imageio"
)

var (
	extractFlags struct {
		Image string
		Out   string
		Key   uint64
		Step  float64
	}
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the watermark image from a marked image",
	Run: func(cmd *cobra.Command, args []string) {
		marked, err := imageio.Load(extractFlags.Image)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load marked image")
		}

		wm, err := colormark.Extract(cmd.Context(), marked, extractFlags.Key,
			colormark.WithStepSize(extractFlags.Step))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to extract watermark")
		}
		if err := imageio.Save(extractFlags.Out, wm); err != nil {
			log.Fatal().Err(err).Msg("Failed to save watermark image")
		}
		log.Info().Str("output", extractFlags.Out).Msg("Extracted watermark")
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractFlags.Image, "image", "i", "", "Path to marked image (required)")
	extractCmd.MarkFlagRequired("image")
	extractCmd.Flags().StringVarP(&extractFlags.Out, "output", "o", "watermark.png", "Output path for the recovered watermark")
	extractCmd.Flags().Uint64VarP(&extractFlags.Key, "key", "k", 0, "Embedding key")
	extractCmd.Flags().Float64VarP(&extractFlags.Step, "step", "s", 50, "Quantization step size")
}
