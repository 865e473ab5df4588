package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pagedeck/internal/config"
	"pagedeck/internal/domain"
	"pagedeck/internal/eventbus"
	"pagedeck/internal/ui"
)

// e2eEnv makes the app announce readiness on stdout for the pty tests
const e2eEnv = "PAGEDECK_E2E_TEST"

var (
	configPath            string
	logPath               string
	debugMode             bool
	version, commit, date string

	// menu overrides, applied only when set on the command line
	layoutFlag    string
	itemWidthFlag float64
	marginFlag    float64
	centeredFlag  bool
	bounceFlag    bool
	animationFlag int
	bottomFlag    bool
	rememberFlag  bool
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "pagedeck [flags] [files...]",
	Short: "Swipe through files as pages under a synchronized tab strip",
	Long: `pagedeck shows each file as a page of a horizontal carousel with a
scrolling menu of tabs above it. Drag the content with the mouse, click a
tab, or use the arrow keys to move between pages.

Files given as arguments replace the [[pages]] listed in the config file.
A directory argument adds every regular file inside it.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/pagedeck/config.toml)")
	flags.StringVar(&logPath, "log", filepath.Join(os.TempDir(), "pagedeck.log"), "log file")
	flags.BoolVar(&debugMode, "debug", false, "Enable verbose carousel logging")

	flags.StringVar(&layoutFlag, "layout", "", "menu layout: fixed, segmented, text or centered")
	flags.Float64Var(&itemWidthFlag, "item-width", 0, "label width in cells for fixed and centered layouts")
	flags.Float64Var(&marginFlag, "margin", 0, "gap between labels in cells")
	flags.BoolVar(&centeredFlag, "centered", false, "center the labels when they fit the screen")
	flags.BoolVar(&bounceFlag, "bounce", true, "allow dragging past the first and last page")
	flags.IntVar(&animationFlag, "animation", 0, "page transition duration in milliseconds")
	flags.BoolVar(&bottomFlag, "bottom", false, "draw the menu below the pages")
	flags.BoolVar(&rememberFlag, "remember", false, "reopen on the last viewed page")
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("pagedeck %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("pagedeck %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	closeLog := setupLogging(logPath)
	defer closeLog()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := newConfigService(configPath, bus)
	fileCfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	log.Printf("Loaded config from %s", configSvc.Path())

	// flags change this run only; fileCfg is what gets saved back
	cfg := *fileCfg
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	pages, err := resolvePages(args, cfg.Pages, filepath.Dir(configSvc.Path()))
	if err != nil {
		return err
	}

	model, err := ui.NewModel(bus, &cfg, pages, ui.Options{Debug: debugMode})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	if cfg.UI.RememberLastPage {
		persistLastPage(bus, configSvc, fileCfg)
	}

	// Forward events to the UI
	stopForwarding := forwardEvents(bus, p.Send, eventbus.EventError, eventbus.EventConfigSaved)
	defer stopForwarding()

	if os.Getenv(e2eEnv) != "" {
		bus.Subscribe(eventbus.EventAppReady, func(eventbus.DomainEvent) {
			fmt.Fprint(os.Stdout, "__READY__")
		})
	}

	log.Printf("Starting UI with %d pages...", len(pages))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running app: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// forwardEvents relays the given bus events to send. The returned stop func
// closes the bus before the channel, so in-flight handlers finish first.
func forwardEvents(bus eventbus.EventBus, send func(tea.Msg), types ...eventbus.EventType) func() {
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range types {
		bus.Subscribe(t, forwardEvent)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range eventChan {
			send(ui.EventMsg{Event: event})
		}
	}()

	return func() {
		bus.Close()
		close(eventChan)
		<-done
	}
}

func newConfigService(path string, bus eventbus.EventBus) config.ConfigService {
	if path != "" {
		return config.NewConfigServiceForPath(path, bus)
	}
	return config.NewConfigServiceWithBus(bus)
}

// applyFlags copies explicitly set flags over the loaded config
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("layout") {
		cfg.Menu.Layout = layoutFlag
	}
	if flags.Changed("item-width") {
		cfg.Menu.ItemWidth = itemWidthFlag
	}
	if flags.Changed("margin") {
		cfg.Menu.Margin = marginFlag
	}
	if flags.Changed("centered") {
		cfg.Menu.Centered = centeredFlag
	}
	if flags.Changed("bounce") {
		cfg.Menu.Bounce = bounceFlag
	}
	if flags.Changed("animation") {
		cfg.Menu.AnimationMS = animationFlag
	}
	if flags.Changed("bottom") && bottomFlag {
		cfg.Menu.Position = "bottom"
	}
	if flags.Changed("remember") {
		cfg.UI.RememberLastPage = rememberFlag
	}
}

// persistLastPage saves the settled page into the config file
func persistLastPage(bus eventbus.EventBus, svc config.ConfigService, fileCfg *config.Config) {
	var mu sync.Mutex
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		fileCfg.UI.LastPage = event.LastPage
		fileCfg.UI.RememberLastPage = true
		if err := svc.Save(fileCfg); err != nil {
			log.Printf("Failed to save config: %v", err)
			bus.Publish(eventbus.ErrorEvent{Message: "Failed to save config", Err: err})
		}
	})
}

// setupLogging sends the standard logger to path
func setupLogging(path string) func() {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("Could not open log file: %v", err)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { _ = logFile.Close() }
}

// errNoPages explains how to give pagedeck something to show
func errNoPages(configFile string) error {
	return fmt.Errorf("%w: pass files as arguments or list [[pages]] in %s", domain.ErrNoPages, configFile)
}
