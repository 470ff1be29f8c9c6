package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/antonpk1/excalidraw-mcp-app/cmd/excalidraw-app/commands"
)

func main() {
	envfile := ".env"
	if os.Getenv("EXCALIDRAW_ENV") == "dev" {
		envfile = ".env.dev"
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if err := godotenv.Load(envfile); err != nil {
		slog.Debug("no env file loaded", "file", envfile)
	}
	commands.Execute()
}
