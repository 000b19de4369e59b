package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ferry/internal/auth"
	"ferry/internal/blobstore"
	"ferry/internal/registry"
	"ferry/internal/server"
)

const (
	addrEnvKey      = "FERRY_ADDR"
	dataDirEnvKey   = "FERRY_DATA_DIR"
	apiKeyEnvKey    = "FERRY_API_KEY"
	maxUploadEnvKey = "FERRY_MAX_UPLOAD_BYTES"

	defaultAddr    = "127.0.0.1:7525"
	defaultDataDir = "uploads"
)

func newSrvCmd() *cobra.Command {
	var (
		addr      string
		dataDir   string
		maxUpload int64
	)

	cmd := &cobra.Command{
		Use:   "srv",
		Short: "Run the ferry server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default().With("component", "server")

			secret := strings.TrimSpace(os.Getenv(apiKeyEnvKey))
			if secret == "" {
				secret = auth.GenerateSecret()
				logger.Info("generated api key for this run")
			}
			guard, err := auth.NewGuard(secret)
			if err != nil {
				return err
			}

			blobs, err := blobstore.NewLocalStore(dataDir)
			if err != nil {
				return err
			}

			// The one disclosure of the shared secret.
			fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\n", secret)

			srv := server.New(addr, registry.New(), blobs, guard, logger, server.Options{
				MaxUploadBytes: maxUpload,
			})
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr(addrEnvKey, defaultAddr), "listen address")
	cmd.Flags().StringVar(&dataDir, "data-dir", envOr(dataDirEnvKey, defaultDataDir), "blob storage directory")
	cmd.Flags().Int64Var(&maxUpload, "max-upload-bytes", envInt64Or(maxUploadEnvKey, 0), "maximum upload body size in bytes (0 = 100 MiB)")

	return cmd
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
