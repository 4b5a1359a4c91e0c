package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ETS-Android5/tensorio-android/internal/logger"
	"github.com/ETS-Android5/tensorio-android/pkg/layer"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	cfg Config
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       configPath(),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "shorthand for --log-level=debug",
			Destination: &debug,
		},
	}
}

// setup loads the config file and installs the logger on the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loaded, err := LoadConfig(configFile)
	if err != nil {
		return ctx, err
	}
	cfg = loaded
	applyLogConfig(cmd, cfg)

	level := logger.ParseLevel(logLevel)
	if debug {
		level = logger.ParseLevel("debug")
	}
	return logger.WithContext(ctx, logger.ForFormat(os.Stderr, logFormat, level)), nil
}

func quantizationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "standard",
			Aliases: []string{"preset"},
			Usage:   "standard range: zero-to-one ([0,1]) or negative-one-to-one ([-1,1])",
		},
		&cli.FloatFlag{
			Name:  "scale",
			Usage: "explicit scale (requires --bias)",
		},
		&cli.FloatFlag{
			Name:  "bias",
			Usage: "explicit bias (requires --scale)",
		},
	}
}

var errNoQuantization = errors.New("one of --standard or --scale/--bias is required")

// quantizationFromFlags resolves the transform parameters, falling back to
// the config file's preset.
func quantizationFromFlags(cmd *cli.Command) (layer.Quantization, error) {
	scaleSet, biasSet := cmd.IsSet("scale"), cmd.IsSet("bias")
	standard := cmd.String("standard")
	switch {
	case standard != "" && (scaleSet || biasSet):
		return layer.Quantization{}, errors.New("--standard and --scale/--bias are mutually exclusive")
	case scaleSet != biasSet:
		return layer.Quantization{}, errors.New("--scale and --bias must be given together")
	case scaleSet:
		return layer.Quantization{Scale: float32(cmd.Float("scale")), Bias: float32(cmd.Float("bias"))}, nil
	}
	if standard == "" {
		standard = cfg.Standard
	}
	if standard == "" {
		return layer.Quantization{}, errNoQuantization
	}
	std, err := layer.ParseStandard(standard)
	if err != nil {
		return layer.Quantization{}, err
	}
	return layer.Quantization{Standard: std}, nil
}
