package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List files on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), a)
		},
	}
}

func runList(ctx context.Context, a *app) error {
	if err := a.ensureConfig(); err != nil {
		return err
	}

	files, err := a.client().List(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("no files on server")
		return nil
	}

	fmt.Printf("%-36s  %-30s  %-10s  %s\n", "ID", "FILENAME", "SIZE", "UPLOADED")
	for _, f := range files {
		fmt.Printf("%-36s  %-30s  %-10s  %s\n", f.ID, f.Filename, humanize.Bytes(uint64(f.Size)), f.Timestamp)
	}
	return nil
}
