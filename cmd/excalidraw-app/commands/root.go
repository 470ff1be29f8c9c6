package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var rootCmd = &cobra.Command{
	Use:   "excalidraw-app",
	Short: "Incremental Excalidraw diagram synthesis server",
	Long: `excalidraw-app hosts the incremental diagram pipeline: streamed
element payloads are recovered, resolved against saved checkpoints,
geometrically normalized, and pushed live to connected Excalidraw canvases.`,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serveHost, "host", "", "Server host (default: EXCALIDRAW_SERVE_HOST env var or localhost)")
	rootCmd.PersistentFlags().IntVar(&servePort, "port", 0, "Server port (default: EXCALIDRAW_SERVE_PORT env var or 8080)")
}

// getServeConfig resolves host/port: flags win over env vars over defaults.
func getServeConfig() (string, int) {
	host := serveHost
	if host == "" {
		host = os.Getenv("EXCALIDRAW_SERVE_HOST")
	}
	if host == "" {
		host = "localhost"
	}
	port := servePort
	if port == 0 {
		if p, err := strconv.Atoi(os.Getenv("EXCALIDRAW_SERVE_PORT")); err == nil {
			port = p
		}
	}
	if port == 0 {
		port = 8080
	}
	return host, port
}
