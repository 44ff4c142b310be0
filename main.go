package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"callstrip/app"
	"callstrip/config"
	"callstrip/filmstrip"
	"callstrip/layout"
	"callstrip/log"
	"callstrip/participants"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var (
	version = "0.3.0"

	widthFlag        int
	heightFlag       int
	chatFlag         bool
	modeFlag         string
	participantsFlag int
	formatFlag       string

	rootCmd = &cobra.Command{
		Use:   "callstrip",
		Short: "callstrip - filmstrip layout and visible-window engine with a terminal demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			return app.Run(ctx, cfg)
		},
	}

	layoutCmd = &cobra.Command{
		Use:   "layout",
		Short: "Print the dimension record computed for a viewport",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			mode, err := layout.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			if widthFlag < 0 || heightFlag < 0 || participantsFlag < 0 {
				return fmt.Errorf("width, height and participants must not be negative")
			}

			result := computeLayout(config.LoadConfig(), mode, participantsFlag)
			pretty := term.IsTerminal(int(os.Stdout.Fd()))
			return writeLayout(cmd.OutOrStdout(), result, formatFlag, pretty)
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved layout mode and panel state",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			if err := config.DeleteState(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Println("State has been reset successfully")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of callstrip",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("callstrip version %s\n", version)
		},
	}
)

// layoutResult is what the layout subcommand prints.
type layoutResult struct {
	Mode         string           `json:"mode" yaml:"mode"`
	Viewport     layout.Size      `json:"viewport" yaml:"viewport"`
	ChatOpen     bool             `json:"chat_open" yaml:"chat_open"`
	Participants int              `json:"participants" yaml:"participants"`
	Dimensions   any              `json:"dimensions" yaml:"dimensions"`
	Window       filmstrip.Window `json:"window" yaml:"window"`
}

// computeLayout runs the engine once over n generated participants.
func computeLayout(cfg *config.Config, mode layout.Mode, n int) layoutResult {
	dir := participants.New()
	engine := filmstrip.New(cfg, dir)
	dir.Subscribe(func(c participants.Change) {
		if c.Kind == participants.Joined {
			engine.ParticipantJoined(c.Index)
		}
	})
	for i := 0; i < n; i++ {
		dir.Add(fmt.Sprintf("participant-%d", i+1))
	}

	engine.SetMode(mode)
	engine.SetChatOpen(chatFlag)
	engine.SetViewportSize(widthFlag, heightFlag)

	return layoutResult{
		Mode:         mode.String(),
		Viewport:     engine.Viewport(),
		ChatOpen:     engine.ChatOpen(),
		Participants: dir.Len(),
		Dimensions:   engine.Dimensions(),
		Window:       engine.Window(),
	}
}

func writeLayout(w io.Writer, result layoutResult, format string, pretty bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(result)
	default:
		return fmt.Errorf("unknown format %q (must be 'json' or 'yaml')", format)
	}
}

func init() {
	layoutCmd.Flags().IntVar(&widthFlag, "width", 1280, "Viewport width in pixels")
	layoutCmd.Flags().IntVar(&heightFlag, "height", 720, "Viewport height in pixels")
	layoutCmd.Flags().BoolVar(&chatFlag, "chat", false, "Reserve room for the open chat panel")
	layoutCmd.Flags().StringVarP(&modeFlag, "mode", "m", layout.ModeTile.String(),
		"Layout mode ('tile', 'vertical' or 'horizontal')")
	layoutCmd.Flags().IntVarP(&participantsFlag, "participants", "n", 4, "Number of remote participants")
	layoutCmd.Flags().StringVarP(&formatFlag, "format", "o", "json", "Output format ('json' or 'yaml')")

	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
