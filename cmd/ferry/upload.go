package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newUploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file to the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd.Context(), a, args[0])
		},
	}
}

func runUpload(ctx context.Context, a *app, path string) error {
	if err := a.ensureConfig(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Printf("uploading %s (%s)...\n", path, humanize.Bytes(uint64(info.Size())))

	resp, stats, err := a.client().Upload(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("uploaded %s\n", resp.Filename)
	fmt.Printf("  id:   %s\n", resp.ID)
	fmt.Printf("  size: %s\n", humanize.Bytes(uint64(resp.Size)))
	fmt.Printf("  rate: %s/s\n", humanize.Bytes(uint64(stats.BytesPerSecond())))
	return nil
}
