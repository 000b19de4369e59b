package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const shellHelp = `commands:
  upload <path>           upload a file
  list                    list files on the server
  download <id> [path]    download a file, optionally into a directory
  delete <id>             delete a file
  web                     open the server's web interface in a browser
  config                  update server URL and API key
  help                    show this help
  exit                    leave the shell`

// runShell drives the interactive mode: a read-dispatch loop over the same
// run functions the cobra subcommands use.
func runShell(ctx context.Context, a *app) error {
	if err := a.ensureConfig(); err != nil {
		return err
	}

	fmt.Printf("connected to %s\n", a.cfg.ServerURL)
	fmt.Println(`type "help" for commands, "exit" to quit`)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Print("> ")
		line, err := a.readLine()
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if err := dispatch(ctx, a, fields[0], fields[1:]); err != nil {
			if err == errShellExit {
				return nil
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

var errShellExit = fmt.Errorf("exit")

func dispatch(ctx context.Context, a *app, cmd string, args []string) error {
	switch cmd {
	case "upload":
		if len(args) != 1 {
			return fmt.Errorf("usage: upload <path>")
		}
		return runUpload(ctx, a, args[0])
	case "list", "ls":
		return runList(ctx, a)
	case "download":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: download <id> [path]")
		}
		dest := "."
		if len(args) == 2 {
			dest = args[1]
		}
		return runDownload(ctx, a, args[0], dest)
	case "delete", "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <id>")
		}
		return runDelete(ctx, a, args[0])
	case "web":
		return runWeb(a)
	case "config":
		return a.promptConfig()
	case "help":
		fmt.Println(shellHelp)
		return nil
	case "exit", "quit":
		return errShellExit
	default:
		return fmt.Errorf("unknown command %q, type \"help\" for commands", cmd)
	}
}

func runWeb(a *app) error {
	if err := a.ensureConfig(); err != nil {
		return err
	}
	target := webIndexURL(a.cfg.ServerURL, a.cfg.APIKey)
	fmt.Printf("web interface: %s\n", target)
	if err := openBrowser(target); err != nil {
		fmt.Println("could not launch a browser; open the URL above manually")
	}
	return nil
}

func webIndexURL(serverURL, apiKey string) string {
	return strings.TrimRight(serverURL, "/") + "/?api_key=" + url.QueryEscape(apiKey)
}

func openBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	return cmd.Start()
}
