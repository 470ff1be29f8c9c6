package commands

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/antonpk1/excalidraw-mcp-app/camera"
	"github.com/antonpk1/excalidraw-mcp-app/canvas"
	"github.com/antonpk1/excalidraw-mcp-app/checkpoint"
	"github.com/antonpk1/excalidraw-mcp-app/viz"
	"github.com/antonpk1/excalidraw-mcp-app/web"
)

var serveOutFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live canvas server",
	Long: `Start the canvas server that hosts the diagram pipeline and the live feed.

The server provides:
- POST /api/chunk    streaming payload frames (best-effort partial render)
- POST /api/final    finalized payloads (persisted as a new checkpoint)
- GET  /api/scene    the latest resolved element array
- WS   /api/live     scene/camera frames for connected canvases

Checkpoints live in memory unless EXCALIDRAW_DATASTORE_PROJECT points at a
Google Cloud Datastore project.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store, err := buildStore(ctx)
		if err != nil {
			log.Fatalf("checkpoint store: %v", err)
		}

		var renderer canvas.RenderAdapter
		if serveOutFile != "" {
			renderer = viz.NewFileRenderer(serveOutFile)
		}
		session := canvas.NewSession(store, renderer, camera.TickerScheduler{Interval: 16 * time.Millisecond})
		webServer := web.NewWebServer(session)
		defer webServer.Close()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		host, port := getServeConfig()
		addr := fmt.Sprintf("%s:%d", host, port)
		server := &http.Server{
			Addr:    addr,
			Handler: webServer.Handler(),
		}

		banner := color.New(color.FgCyan, color.Bold)
		banner.Printf("Excalidraw Canvas Server\n")
		fmt.Printf("  API:       http://%s/api\n", addr)
		fmt.Printf("  Live feed: ws://%s/api/live\n", addr)
		if serveOutFile != "" {
			fmt.Printf("  Mirror:    %s\n", serveOutFile)
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("server failed: %v", err)
			}
		}()

		<-sigChan
		color.Yellow("shutting down...")
		session.Camera().Stop()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown", "err", err)
		}
	},
}

// buildStore picks the checkpoint backing from the environment.
func buildStore(ctx context.Context) (checkpoint.Store, error) {
	project := os.Getenv("EXCALIDRAW_DATASTORE_PROJECT")
	if project == "" {
		return checkpoint.NewMemoryStore(), nil
	}
	client, err := datastore.NewClient(ctx, project)
	if err != nil {
		return nil, err
	}
	slog.Info("using Datastore checkpoint store", "project", project)
	return checkpoint.NewDatastoreStore(client), nil
}

func init() {
	serveCmd.Flags().StringVar(&serveOutFile, "out", "", "Also mirror every frame into this .excalidraw file")
	rootCmd.AddCommand(serveCmd)
}
