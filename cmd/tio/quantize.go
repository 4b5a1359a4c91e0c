package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/ETS-Android5/tensorio-android/internal/logger"
	"github.com/ETS-Android5/tensorio-android/internal/rawfile"
	"github.com/ETS-Android5/tensorio-android/internal/tensorbuf"
	"github.com/ETS-Android5/tensorio-android/pkg/batch"
	"github.com/ETS-Android5/tensorio-android/pkg/layer"
	"github.com/ETS-Android5/tensorio-android/pkg/quant"
)

func ioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "raw little-endian input buffer",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "path to write the converted buffer",
			Required: true,
		},
	}
}

func quantizeCmd() *cli.Command {
	flags := append(ioFlags(), quantizationFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "fit",
			Usage: "derive scale and bias from the input's min and max",
		},
		&cli.BoolFlag{
			Name:  "report",
			Usage: "print round-trip error statistics as JSON",
		},
	)

	return &cli.Command{
		Name:  "quantize",
		Usage: "Convert a float32 buffer into uint8",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			in, err := rawfile.Open(cmd.String("input"))
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			v, err := tensorbuf.Unpack(layer.Interface{Name: "input", DType: layer.Float32}, in.Bytes())
			if err != nil {
				return err
			}
			values := v.(batch.Float32s)

			q, d, err := resolvePair(cmd, values)
			if err != nil {
				return err
			}
			iface := layer.Interface{
				Name:     "output",
				DType:    layer.UInt8,
				Quantize: &layer.Quantization{Scale: q.Scale(), Bias: q.Bias()},
			}
			out, st, err := tensorbuf.Pack(iface, values)
			if err != nil {
				return err
			}
			if err := os.WriteFile(cmd.String("output"), out, 0o644); err != nil {
				return err
			}
			log.Info("quantized", "elements", st.Elements, "clamped", st.Clamped,
				"scale", q.Scale(), "bias", q.Bias(), "mapped", in.Mapped())
			if st.Clamped > 0 {
				log.Warn("values fell outside the byte range and were saturated", "count", st.Clamped)
			}

			if !cmd.Bool("report") || len(values) == 0 {
				return nil
			}
			stats, err := quant.MeasureRoundTrip(q, d, values)
			if err != nil {
				return err
			}
			return writeJSON(stats)
		},
	}
}

// resolvePair returns the quantizer to apply and the dequantizer that undoes it.
func resolvePair(cmd *cli.Command, values []float32) (quant.Quantizer, quant.Dequantizer, error) {
	if cmd.Bool("fit") {
		if cmd.IsSet("standard") || cmd.IsSet("scale") || cmd.IsSet("bias") {
			return quant.Quantizer{}, quant.Dequantizer{}, errors.New("--fit cannot be combined with explicit quantization")
		}
		return quant.FitValues(values)
	}
	p, err := quantizationFromFlags(cmd)
	if err != nil {
		return quant.Quantizer{}, quant.Dequantizer{}, err
	}
	q := p.Quantizer()
	if p.Standard != "" {
		return q, p.Dequantizer(), nil
	}
	d, err := q.Inverse()
	if err != nil {
		return quant.Quantizer{}, quant.Dequantizer{}, err
	}
	return q, d, nil
}

func dequantizeCmd() *cli.Command {
	return &cli.Command{
		Name:  "dequantize",
		Usage: "Convert a uint8 buffer into float32",
		Flags: append(ioFlags(), quantizationFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			p, err := quantizationFromFlags(cmd)
			if err != nil {
				return err
			}
			in, err := rawfile.Open(cmd.String("input"))
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			v, err := tensorbuf.Unpack(layer.Interface{Name: "input", DType: layer.UInt8, Dequantize: &p}, in.Bytes())
			if err != nil {
				return err
			}
			out, st, err := tensorbuf.Pack(layer.Interface{Name: "output", DType: layer.Float32}, v)
			if err != nil {
				return err
			}
			if err := os.WriteFile(cmd.String("output"), out, 0o644); err != nil {
				return err
			}
			log.Info("dequantized", "elements", st.Elements, "mapped", in.Mapped())
			return nil
		},
	}
}

func writeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(b))
	return err
}
