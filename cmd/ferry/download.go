package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDownloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download <id> [path]",
		Short: "Download a file from the server",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}
			return runDownload(cmd.Context(), a, args[0], dest)
		},
	}
}

func runDownload(ctx context.Context, a *app, id, dest string) error {
	if err := a.ensureConfig(); err != nil {
		return err
	}

	fmt.Printf("downloading %s...\n", id)
	progressShown := false
	progress := func(done, total int64) {
		if total <= 0 {
			return
		}
		progressShown = true
		pct := float64(done) / float64(total) * 100
		fmt.Printf("\rdownloading: %5.1f%% (%s / %s)", pct, humanize.Bytes(uint64(done)), humanize.Bytes(uint64(total)))
	}

	path, stats, err := a.client().Download(ctx, id, dest, progress)
	if progressShown {
		fmt.Println()
	}
	if err != nil {
		return err
	}

	fmt.Printf("downloaded to %s\n", path)
	fmt.Printf("  size: %s\n", humanize.Bytes(uint64(stats.Bytes)))
	fmt.Printf("  rate: %s/s\n", humanize.Bytes(uint64(stats.BytesPerSecond())))
	return nil
}
