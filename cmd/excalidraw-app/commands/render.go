package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/antonpk1/excalidraw-mcp-app/canvas"
	"github.com/antonpk1/excalidraw-mcp-app/checkpoint"
	"github.com/antonpk1/excalidraw-mcp-app/viz"
)

var (
	renderPlan string
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render <payload.json>",
	Short: "Resolve and normalize a payload into an .excalidraw file",
	Long: `Run a finalized element payload through the full pipeline — pseudo-element
extraction, geometry normalization, draw-order correction — and write the
result as an .excalidraw file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("reading payload: %v", err)
		}
		session := canvas.NewSession(checkpoint.NewMemoryStore(), viz.NewFileRenderer(renderOut), nil)
		res, err := session.HandleFinal(context.Background(), string(data), renderPlan)
		if err != nil {
			log.Fatalf("resolving payload: %v", err)
		}
		color.Green("wrote %s (%d elements, checkpoint %s)", renderOut, len(res.Elements), res.CheckpointID)
		for _, hint := range res.Hints {
			fmt.Printf("  hint: %s\n", hint)
		}
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderPlan, "plan", "", "Authoring plan to persist with the checkpoint")
	renderCmd.Flags().StringVar(&renderOut, "out", "out.excalidraw", "Output file path")
	rootCmd.AddCommand(renderCmd)
}
