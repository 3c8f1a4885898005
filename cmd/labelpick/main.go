package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/young1lin/label-layout/internal/config"
	"github.com/young1lin/label-layout/internal/store"
	"github.com/young1lin/label-layout/internal/update"
	"github.com/young1lin/label-layout/internal/watch"
)

// exitFunc is the function to call for exiting (can be mocked for testing)
var exitFunc = os.Exit

func main() {
	deps := &AppDependencies{
		ConfigLoader: config.Load,
		LabelsLoader: config.LoadLabels,
		DBOpener:     store.Open,
		WatcherCreator: func(path string) (watch.WatcherInterface, error) {
			return watch.New(path, config.LoadLabels)
		},
		ProgramRunner: func(p *tea.Program) (tea.Model, error) {
			return p.Run()
		},
		UpdateCheck: func(ctx context.Context) (*update.Release, error) {
			return update.NewChecker(update.Version, config.ConfigDir()).Check(ctx, true)
		},
		Getwd:  os.Getwd,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	if err := newRootCmd(deps).Execute(); err != nil {
		logAndExit(err)
	}
}

func logAndExit(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exitFunc(1)
	}
}
