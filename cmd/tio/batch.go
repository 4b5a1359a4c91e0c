package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ETS-Android5/tensorio-android/internal/api"
	"github.com/ETS-Android5/tensorio-android/internal/logger"
	"github.com/ETS-Android5/tensorio-android/internal/tensorbuf"
	"github.com/ETS-Android5/tensorio-android/pkg/batch"
	"github.com/ETS-Android5/tensorio-android/pkg/layer"
)

type batchSummary struct {
	Keys     []string       `json:"keys"`
	Size     int            `json:"size"`
	Rejected int            `json:"rejected"`
	Buffers  map[string]int `json:"buffers,omitempty"`
	Clamped  int            `json:"clamped,omitempty"`
}

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Validate JSON-lines items against a key schema and pack them",
		ArgsUsage: "<items.jsonl|->",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "keys",
				Aliases:  []string{"k"},
				Usage:    "declared batch keys",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "interfaces",
				Usage: "JSON file of layer interfaces; packs the batch when set",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "directory for packed <key>.bin buffers",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "stop at the first rejected item",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			b, err := batch.New(splitKeys(cmd.StringSlice("keys"))...)
			if err != nil {
				return err
			}

			r, closeFn, err := openArg(cmd.Args().First())
			if err != nil {
				return err
			}
			defer closeFn()

			rejected, err := fillBatch(b, r, cmd.Bool("strict"), log)
			if err != nil {
				return err
			}
			summary := batchSummary{Keys: b.Keys(), Size: b.Len(), Rejected: rejected}

			if path := cmd.String("interfaces"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				ifaces, err := layer.ParseInterfaces(data)
				if err != nil {
					return err
				}
				bufs, st, err := tensorbuf.PackBatch(ifaces, b)
				if err != nil {
					return err
				}
				summary.Buffers = make(map[string]int, len(bufs))
				summary.Clamped = st.Clamped
				for key, buf := range bufs {
					out := filepath.Join(cmd.String("out-dir"), key+".bin")
					if err := os.WriteFile(out, buf, 0o644); err != nil {
						return err
					}
					summary.Buffers[key] = len(buf)
					log.Debug("wrote buffer", "key", key, "path", out, "bytes", len(buf))
				}
			}
			return writeJSON(summary)
		},
	}
}

// fillBatch adds one item per non-blank line of r and returns how many were
// rejected for not matching the schema.
func fillBatch(b *batch.Batch, r io.Reader, strict bool, log logger.Logger) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64<<20)

	rejected := 0
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		item, err := api.ParseItem([]byte(text))
		if err != nil {
			return rejected, fmt.Errorf("line %d: %w", line, err)
		}
		err = b.Add(item)
		var mismatch *batch.SchemaMismatchError
		switch {
		case err == nil:
		case errors.As(err, &mismatch) && !strict:
			rejected++
			log.Warn("item rejected", "line", line, "missing", mismatch.Missing, "extra", mismatch.Extra)
		default:
			return rejected, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return rejected, sc.Err()
}

func splitKeys(raw []string) []string {
	var keys []string
	for _, r := range raw {
		for _, k := range strings.Split(r, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func openArg(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
