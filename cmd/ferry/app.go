package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"ferry/internal/api"
	"ferry/internal/config"
)

// app carries the client-side state shared by the cobra commands and the
// interactive shell.
type app struct {
	cfg   config.Config
	ready bool
	stdin *bufio.Reader
}

func newApp(cfg config.Config, ready bool) *app {
	return &app{cfg: cfg, ready: ready, stdin: bufio.NewReader(os.Stdin)}
}

// ensureConfig makes sure a server URL and API key are available, prompting
// and persisting them on first use. An API key supplied via environment is
// accepted as-is.
func (a *app) ensureConfig() error {
	if a.ready || a.cfg.APIKey != "" {
		return nil
	}
	fmt.Println("First-time setup: enter your server details.")
	return a.promptConfig()
}

// promptConfig interactively collects and saves the configuration.
func (a *app) promptConfig() error {
	fmt.Printf("Server URL [%s]: ", a.cfg.ServerURL)
	serverURL, err := a.readLine()
	if err != nil {
		return err
	}
	fmt.Print("API key (from server startup output): ")
	apiKey, err := a.readLine()
	if err != nil {
		return err
	}

	if serverURL != "" {
		a.cfg.ServerURL = strings.TrimRight(serverURL, "/")
	}
	if apiKey != "" {
		a.cfg.APIKey = apiKey
	}

	if err := config.Save(a.cfg); err != nil {
		return err
	}
	a.ready = true

	if path, err := config.Path(); err == nil {
		fmt.Printf("configuration saved to %s\n", path)
	}
	return nil
}

func (a *app) client() *api.Client {
	return api.NewClient(a.cfg.ServerURL, a.cfg.APIKey)
}

// readLine reads one trimmed line from the shared stdin reader.
func (a *app) readLine() (string, error) {
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
