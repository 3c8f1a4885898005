package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/young1lin/label-layout/internal/config"
	"github.com/young1lin/label-layout/internal/logging"
	"github.com/young1lin/label-layout/internal/store"
	"github.com/young1lin/label-layout/internal/update"
	"github.com/young1lin/label-layout/internal/watch"
	"github.com/young1lin/label-layout/labels"
	"github.com/young1lin/label-layout/tui"
)

var (
	errNoLabelSource = errors.New("no labels: pass --labels or --db")
	errCancelled     = errors.New("selection cancelled")
	errWatcherClosed = errors.New("watcher closed")
)

// ProgramSender is an interface for sending messages to a Bubbletea program
type ProgramSender interface {
	Send(msg tea.Msg)
}

// AppDependencies contains the dependencies for the commands
type AppDependencies struct {
	ConfigLoader   func(explicit, projectDir string) (*config.Config, error)
	LabelsLoader   func(path string) ([]labels.Label, error)
	DBOpener       func(string) (*store.DB, error)
	WatcherCreator func(string) (watch.WatcherInterface, error)
	ProgramRunner  func(*tea.Program) (tea.Model, error)
	UpdateCheck    func(context.Context) (*update.Release, error)
	Getwd          func() (string, error)
	Stdout         io.Writer
	Stderr         io.Writer
}

// options holds every flag value
type options struct {
	configPath string
	logFile    string
	logLevel   string

	labelsPath string
	dbPath     string
	set        string

	maxCount   int
	maxSet     bool
	divider    bool
	dividerSet bool
	watch      bool
	confirm    bool
	title      string
	width      int
	checked    []string
}

func newRootCmd(deps *AppDependencies) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "labelpick",
		Short:         "pick labels from a wrapping list of chips",
		Version:       update.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.DefaultConfig()
			cfg.File = opts.logFile
			if opts.logLevel != "" {
				cfg.Level = opts.logLevel
			}
			logging.Initialize(cfg)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "interactively check labels and print the checked ids as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.maxSet = cmd.Flags().Changed("max")
			opts.dividerSet = cmd.Flags().Changed("divider")
			return runPick(deps, opts)
		},
	}
	addSourceFlags(pickCmd, opts)
	addLayoutFlags(pickCmd, opts)
	pickCmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the labels file when it changes")
	pickCmd.Flags().BoolVar(&opts.confirm, "confirm", false, "finish with enter instead of toggling")
	pickCmd.Flags().StringVar(&opts.title, "title", "Pick labels", "header text")

	// The bare command behaves like pick.
	rootCmd.RunE = pickCmd.RunE
	rootCmd.Flags().AddFlagSet(pickCmd.Flags())

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "print the chip layout once without interaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.maxSet = cmd.Flags().Changed("max")
			opts.dividerSet = cmd.Flags().Changed("divider")
			return runRender(deps, opts)
		},
	}
	addSourceFlags(renderCmd, opts)
	addLayoutFlags(renderCmd, opts)
	renderCmd.Flags().IntVar(&opts.width, "width", 80, "available width in cells, 0 for unbounded")
	renderCmd.Flags().StringSliceVar(&opts.checked, "check", nil, "label ids to check before rendering")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "store a labels file in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(deps, opts)
		},
	}
	importCmd.Flags().StringVar(&opts.labelsPath, "labels", "", "YAML or JSON labels file (required)")
	importCmd.Flags().StringVar(&opts.dbPath, "db", "", "catalog database path (default under the config dir)")
	importCmd.Flags().StringVar(&opts.set, "set", store.DefaultSet, "label set name")
	importCmd.MarkFlagRequired("labels")

	setsCmd := &cobra.Command{
		Use:   "sets",
		Short: "list the label sets in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSets(deps, opts)
		},
	}
	setsCmd.Flags().StringVar(&opts.dbPath, "db", "", "catalog database path (default under the config dir)")

	var checkUpdate bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the version and optionally look for a newer release",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.Context(), deps, checkUpdate)
		},
	}
	versionCmd.Flags().BoolVar(&checkUpdate, "check", false, "ask GitHub for the latest release")

	rootCmd.AddCommand(pickCmd, renderCmd, importCmd, setsCmd, versionCmd)
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)
	return rootCmd
}

func addSourceFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "YAML or JSON labels file")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "catalog database to read labels from")
	cmd.Flags().StringVar(&opts.set, "set", store.DefaultSet, "label set name in the catalog")
}

func addLayoutFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().IntVar(&opts.maxCount, "max", 0, "maximum number of checked labels")
	cmd.Flags().BoolVar(&opts.divider, "divider", false, "draw dividers between rows")
}

// loadConfig reads the config and applies flag overrides
func loadConfig(deps *AppDependencies, opts *options) (*config.Config, error) {
	cwd, err := deps.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := deps.ConfigLoader(opts.configPath, cwd)
	if err != nil {
		return nil, err
	}
	if opts.maxSet {
		cfg.SetMaxCheckCount(opts.maxCount)
	}
	if opts.dividerSet {
		cfg.Divider.Enabled = opts.divider
	}
	return cfg, nil
}

// loadLabels reads labels from the file when given, otherwise from the
// catalog. It also returns a short description of the source.
func loadLabels(deps *AppDependencies, opts *options) ([]labels.Label, string, error) {
	if opts.labelsPath != "" {
		list, err := deps.LabelsLoader(opts.labelsPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load labels: %w", err)
		}
		return list, opts.labelsPath, nil
	}
	if opts.dbPath == "" {
		return nil, "", errNoLabelSource
	}

	db, err := deps.DBOpener(opts.dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open catalog: %w", err)
	}
	defer db.Close()

	list, err := db.LoadSet(opts.set)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load set %q: %w", opts.set, err)
	}
	return list, opts.dbPath + "#" + opts.set, nil
}

// newLayout builds a layout from the config holding list
func newLayout(cfg *config.Config, list []labels.Label, logger *zap.Logger) *labels.Layout {
	layout := labels.New(cfg.Options(logger))
	if n, ok := cfg.MaxCheckCount(); ok {
		layout.SetMaxCheckCount(n)
	}
	layout.SetLabels(list)
	return layout
}

func runPick(deps *AppDependencies, opts *options) error {
	logger := logging.L()

	cfg, err := loadConfig(deps, opts)
	if err != nil {
		return err
	}
	list, source, err := loadLabels(deps, opts)
	if err != nil {
		return err
	}
	layout := newLayout(cfg, list, logger)

	var modelOpts []tui.Option
	modelOpts = append(modelOpts, tui.WithTitle(opts.title))
	if opts.confirm {
		modelOpts = append(modelOpts, tui.WithConfirm())
	}
	model := tui.NewModel(layout, modelOpts...)

	// The picker draws on stderr so stdout carries only the result.
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(deps.Stderr))

	if opts.watch {
		if opts.labelsPath == "" {
			return errors.New("--watch needs --labels")
		}
		watcher, err := deps.WatcherCreator(opts.labelsPath)
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer watcher.Close()

		go runWatchLoop(p, watcher, source, logger)
	}

	logger.Info("picker started", zap.String("source", source), zap.Int("labels", len(list)))

	final, err := deps.ProgramRunner(p)
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && opts.confirm && !m.Confirmed() {
		return errCancelled
	}

	return printSelection(deps.Stdout, layout)
}

// printSelection writes the checked ids as a JSON array
func printSelection(w io.Writer, layout *labels.Layout) error {
	out, err := layout.CheckedIDsAsJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// runWatchLoop forwards reloaded label lists to the picker
func runWatchLoop(sender ProgramSender, watcher watch.WatcherInterface, source string, logger *zap.Logger) {
	for {
		select {
		case list, ok := <-watcher.Updates():
			if !ok {
				sender.Send(tui.WatcherFailedMsg{Err: errWatcherClosed})
				return
			}
			logger.Info("labels reloaded", zap.String("source", source), zap.Int("labels", len(list)))
			sender.Send(tui.LabelsLoadedMsg{Labels: list, Source: source})

		case err, ok := <-watcher.Errors():
			if !ok {
				sender.Send(tui.WatcherFailedMsg{Err: errWatcherClosed})
				return
			}
			logger.Warn("labels reload failed", zap.String("source", source), zap.Error(err))
			sender.Send(tui.ErrorMsg{Err: fmt.Errorf("reload %s: %w", source, err)})
		}
	}
}

func runRender(deps *AppDependencies, opts *options) error {
	logger := logging.L()

	cfg, err := loadConfig(deps, opts)
	if err != nil {
		return err
	}
	list, _, err := loadLabels(deps, opts)
	if err != nil {
		return err
	}
	layout := newLayout(cfg, list, logger)

	rejected := 0
	layout.SetOnCheckChangedListener(labels.ListenerFuncs{
		BeyondMax: func() { rejected++ },
	})
	index := make(map[string]int, len(list))
	for i, label := range list {
		if _, dup := index[label.ID]; !dup {
			index[label.ID] = i
		}
	}
	for _, id := range opts.checked {
		i, ok := index[id]
		if !ok {
			fmt.Fprintf(deps.Stderr, "Warning: unknown label %q\n", id)
			continue
		}
		layout.SetChecked(i, true)
	}
	if rejected > 0 {
		fmt.Fprintf(deps.Stderr, "Warning: %d labels not checked, at most %d allowed\n", rejected, layout.MaxCheckCount())
	}

	_, err = fmt.Fprintln(deps.Stdout, layout.Render(opts.width))
	return err
}

// catalogPath returns the --db value or the default catalog location
func catalogPath(opts *options) string {
	if opts.dbPath != "" {
		return opts.dbPath
	}
	return config.CatalogPath()
}

func runImport(deps *AppDependencies, opts *options) error {
	list, err := deps.LabelsLoader(opts.labelsPath)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}

	dbPath := catalogPath(opts)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	db, err := deps.DBOpener(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer db.Close()

	if err := db.ReplaceSet(opts.set, list); err != nil {
		return fmt.Errorf("failed to import labels: %w", err)
	}

	logging.L().Info("labels imported", zap.String("set", opts.set), zap.Int("labels", len(list)))
	fmt.Fprintf(deps.Stdout, "Imported %d labels into set %q\n", len(list), opts.set)
	return nil
}

func runSets(deps *AppDependencies, opts *options) error {
	db, err := deps.DBOpener(catalogPath(opts))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer db.Close()

	sets, err := db.ListSets()
	if err != nil {
		return err
	}
	for _, s := range sets {
		fmt.Fprintf(deps.Stdout, "%-20s %4d  %s\n", s.Name, s.Count, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runVersion(ctx context.Context, deps *AppDependencies, check bool) error {
	fmt.Fprintln(deps.Stdout, update.BuildInfo())
	if !check || deps.UpdateCheck == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	release, err := deps.UpdateCheck(ctx)
	if err != nil {
		return err
	}
	if release == nil {
		fmt.Fprintln(deps.Stdout, "You are up to date")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Update available: %s → %s\nVisit %s to download\n", update.Version, release.Tag, release.URL)
	return nil
}
