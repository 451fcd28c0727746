package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/colormark"
	"github.com/yyyoichi/colormark/internal/imageio"
	"github.com/yyyoichi/colormark/mark"
)

var (
	payloadFlags struct {
		Image string
		Msg   string
		Out   string
		Key   uint64
		Step  float64
		Pass  string
		ECC   string
		Size  int
	}
)

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Embed and extract text payloads",
}

var payloadEmbedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed a text payload into a host image",
	Run: func(cmd *cobra.Command, args []string) {
		host, err := imageio.Load(payloadFlags.Image)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load host image")
		}
		opts, err := markOptions()
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid mark options")
		}
		m, err := mark.NewString(payloadFlags.Msg, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build mark")
		}
		log.Debug().Int("payloadBits", m.Size()).Int("encodedBits", m.Len()).Msg("Built mark")

		w, err := colormark.New(colormark.WithStepSize(payloadFlags.Step))
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid parameters")
		}
		marked, err := w.EmbedPayload(cmd.Context(), host, m, payloadFlags.Key)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to embed payload")
		}
		if err := imageio.Save(payloadFlags.Out, marked); err != nil {
			log.Fatal().Err(err).Msg("Failed to save marked image")
		}
		log.Info().Str("output", payloadFlags.Out).Int("bytes", len(payloadFlags.Msg)).Msg("Embedded payload")
	},
}

var payloadExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a text payload from a marked image",
	Run: func(cmd *cobra.Command, args []string) {
		marked, err := imageio.Load(payloadFlags.Image)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load marked image")
		}
		opts, err := markOptions()
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid mark options")
		}
		m := mark.NewExtract(payloadFlags.Size*8, opts...)

		w, err := colormark.New(colormark.WithStepSize(payloadFlags.Step))
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid parameters")
		}
		dec, err := w.ExtractPayload(cmd.Context(), marked, m, payloadFlags.Key)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to extract payload")
		}
		msg, err := dec.DecodeToString()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to decode payload")
		}
		fmt.Fprintln(os.Stdout, msg)
	},
}

func markOptions() ([]mark.Option, error) {
	var opts []mark.Option
	switch payloadFlags.ECC {
	case "golay":
		opts = append(opts, mark.WithGolay(mark.DefaultShuffleSeed))
	case "rs":
		opts = append(opts, mark.WithReedSolomon(4, 2))
	case "none":
		opts = append(opts, mark.WithoutECC())
	default:
		return nil, fmt.Errorf("unknown ecc %q: want golay, rs or none", payloadFlags.ECC)
	}
	if payloadFlags.Pass != "" {
		opts = append(opts, mark.WithPassphrase(payloadFlags.Pass))
	}
	return opts, nil
}

func init() {
	rootCmd.AddCommand(payloadCmd)
	payloadCmd.AddCommand(payloadEmbedCmd)
	payloadCmd.AddCommand(payloadExtractCmd)

	for _, c := range []*cobra.Command{payloadEmbedCmd, payloadExtractCmd} {
		c.Flags().StringVarP(&payloadFlags.Image, "image", "i", "", "Path to image (required)")
		c.MarkFlagRequired("image")
		c.Flags().Uint64VarP(&payloadFlags.Key, "key", "k", 0, "Embedding key")
		c.Flags().Float64VarP(&payloadFlags.Step, "step", "s", 50, "Quantization step size")
		c.Flags().StringVarP(&payloadFlags.Pass, "passphrase", "p", "", "Passphrase to encrypt the payload")
		c.Flags().StringVarP(&payloadFlags.ECC, "ecc", "e", "golay", "Error correction: golay, rs or none")
	}
	payloadEmbedCmd.Flags().StringVarP(&payloadFlags.Msg, "message", "m", "", "Message to embed (required)")
	payloadEmbedCmd.MarkFlagRequired("message")
	payloadEmbedCmd.Flags().StringVarP(&payloadFlags.Out, "output", "o", "marked.png", "Output path for the marked image")
	payloadExtractCmd.Flags().IntVarP(&payloadFlags.Size, "size", "n", 0, "Payload length in bytes (required)")
	payloadExtractCmd.MarkFlagRequired("size")
}
