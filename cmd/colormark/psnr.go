package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/colormark/internal/imageio"
	"github.com/yyyoichi/colormark/internal/quality"
)

var (
	psnrFlags struct {
		Original string
		Marked   string
	}
)

var psnrCmd = &cobra.Command{
	Use:   "psnr",
	Short: "Measure the distortion a mark introduced",
	Run: func(cmd *cobra.Command, args []string) {
		original, err := imageio.Load(psnrFlags.Original)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load original image")
		}
		marked, err := imageio.Load(psnrFlags.Marked)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load marked image")
		}

		m, err := quality.Compare(original, marked)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to compare images")
		}
		fmt.Printf("PSNR: %.2f dB\n", m.PSNR)
		fmt.Printf("MSE:  %.4f\n", m.MSE)
		fmt.Printf("MAE:  %.4f\n", m.MAE)
	},
}

func init() {
	rootCmd.AddCommand(psnrCmd)

	psnrCmd.Flags().StringVarP(&psnrFlags.Original, "original", "i", "", "Path to original image (required)")
	psnrCmd.MarkFlagRequired("original")
	psnrCmd.Flags().StringVarP(&psnrFlags.Marked, "marked", "m", "", "Path to marked image (required)")
	psnrCmd.MarkFlagRequired("marked")
}
