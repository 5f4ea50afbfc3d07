package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
	"github.com/iburimskiy/fireworks/internal/game"
	"github.com/iburimskiy/fireworks/internal/sound"
	"github.com/iburimskiy/fireworks/internal/tui"
)

var (
	configFile string
	seed       int64
	mute       bool
	fullscreen bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "fireworks",
		Short:        "a looping fireworks show",
		SilenceUsage: true,
		RunE:         runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().BoolVar(&mute, "mute", false, "disable sound")
	rootCmd.PersistentFlags().BoolVar(&fullscreen, "fullscreen", false, "start in fullscreen")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the show in the terminal",
		RunE:  runTerminal,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default settings file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	s := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		s.Seed = seed
	}
	if mute {
		s.Audio.Enabled = false
	}
	if flags.Changed("fullscreen") {
		s.Window.Fullscreen = fullscreen
	}
	return s, nil
}

// newShow builds the show and the sound player shared by both front ends.
func newShow(s *config.Settings, width, height int) (*fireworks.Show, *sound.Player, error) {
	palette, err := fireworks.ParsePalette(s.Palette)
	if err != nil {
		return nil, nil, fmt.Errorf("palette: %w", err)
	}
	show := fireworks.New(
		fireworks.WithSize(width, height),
		fireworks.WithPalette(palette),
		fireworks.WithSeed(s.ResolveSeed()),
	)

	player, err := sound.New(s.Audio)
	if err != nil {
		// The show goes on without sound.
		log.Printf("[Sound] Warning: %v", err)
		player = sound.Disabled()
	}
	return show, player, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	err := window(cmd)
	if err != nil {
		log.Printf("[Fireworks] Error: %v", err)
		_ = zenity.Error(err.Error(), zenity.Title("Fireworks"), zenity.ErrorIcon)
	}
	return err
}

func window(cmd *cobra.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	show, player, err := newShow(s, s.Window.Width, s.Window.Height)
	if err != nil {
		return err
	}
	defer player.Close()

	return game.Run(s, show, player)
}

func runTerminal(cmd *cobra.Command, args []string) error {
	if path := os.Getenv("FIREWORKS_LOG"); path != "" {
		f, err := tea.LogToFile(path, "fireworks")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	// Sized on the first window size message.
	show, player, err := newShow(s, 0, 0)
	if err != nil {
		return err
	}
	defer player.Close()

	return tui.Run(show, player)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "fireworks.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote default settings to %s\n", path)
	return nil
}
