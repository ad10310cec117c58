package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zdial/internal/cli"
	"github.com/zarlcorp/zdial/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zdial"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		runCLI(ctx, os.Args[1])
		_ = app.Close()
		return
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(_ context.Context, cmd string) {
	switch cmd {
	case "version":
		fmt.Printf("zdial %s\n", version)
	case "generate":
		cli.CmdGenerate(os.Args[2:])
	case "export":
		cli.CmdExport(os.Args[2:])
	case "presets":
		cli.CmdPresets(os.Args[2:])
	case "forget":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: zdial forget <preset>")
			os.Exit(1)
		}
		cli.CmdForget(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "zdial: unknown command %q\n", cmd)
		os.Exit(1)
	}
}

func runTUI() error {
	store, err := cli.OpenPresets()
	if err != nil {
		// the TUI degrades to no preset support
		slog.Warn("presets", "err", err)
		store = nil
	}

	m := tui.New(version, store)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
