package cmd

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagedeck/internal/config"
	"pagedeck/internal/eventbus"
	"pagedeck/internal/ui"
)

func TestFlagsExist(t *testing.T) {
	for _, name := range []string{"config", "log", "debug", "layout", "item-width", "margin", "centered", "bounce", "animation", "bottom", "remember"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "--%s", name)
	}
	assert.Equal(t, "true", rootCmd.Flags().Lookup("bounce").DefValue)
	assert.Equal(t, "c", rootCmd.Flags().Lookup("config").Shorthand)
}

// newFlagCommand returns a command with the root flags parsed from args
func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(rootCmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	t.Cleanup(func() {
		rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	return cmd
}

func TestApplyFlagsOnlyOverridesChanged(t *testing.T) {
	cmd := newFlagCommand(t, "--layout", "segmented", "--bottom", "--animation", "250")
	cfg := config.DefaultConfig()

	applyFlags(cmd, cfg)
	assert.Equal(t, "segmented", cfg.Menu.Layout)
	assert.Equal(t, "bottom", cfg.Menu.Position)
	assert.Equal(t, 250, cfg.Menu.AnimationMS)

	def := config.DefaultConfig()
	assert.Equal(t, def.Menu.ItemWidth, cfg.Menu.ItemWidth)
	assert.Equal(t, def.Menu.Margin, cfg.Menu.Margin)
	assert.Equal(t, def.Menu.Bounce, cfg.Menu.Bounce)
}

func TestApplyFlagsDisablesBounce(t *testing.T) {
	cmd := newFlagCommand(t, "--bounce=false", "--remember", "--item-width", "20")
	cfg := config.DefaultConfig()

	applyFlags(cmd, cfg)
	assert.False(t, cfg.Menu.Bounce)
	assert.True(t, cfg.UI.RememberLastPage)
	assert.Equal(t, 20.0, cfg.Menu.ItemWidth)
}

func TestPersistLastPageSavesConfig(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	path := filepath.Join(t.TempDir(), "config.toml")
	svc := config.NewConfigServiceForPath(path, bus)
	cfg := config.DefaultConfig()

	persistLastPage(bus, svc, cfg)
	bus.Publish(eventbus.ConfigChangedEvent{LastPage: 3})

	require.Eventually(t, func() bool {
		loaded, err := svc.LoadFromPath(path)
		return err == nil && loaded.UI.LastPage == 3 && loaded.UI.RememberLastPage
	}, 2*time.Second, 20*time.Millisecond)
}

func TestPersistLastPageSurvivesQuickClose(t *testing.T) {
	bus := eventbus.New()

	path := filepath.Join(t.TempDir(), "config.toml")
	svc := config.NewConfigServiceForPath(path, bus)
	persistLastPage(bus, svc, config.DefaultConfig())

	bus.Publish(eventbus.ConfigChangedEvent{LastPage: 2})
	bus.Close()

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.UI.LastPage)
}

func TestForwardEventsStopsCleanly(t *testing.T) {
	bus := eventbus.New()

	var mu sync.Mutex
	var got []eventbus.EventType
	send := func(msg tea.Msg) {
		mu.Lock()
		defer mu.Unlock()
		if m, ok := msg.(ui.EventMsg); ok {
			got = append(got, m.Event.Type())
		}
	}

	slow := make(chan struct{})
	bus.Subscribe(eventbus.EventError, func(eventbus.DomainEvent) { <-slow })
	stop := forwardEvents(bus, send, eventbus.EventError, eventbus.EventConfigSaved)

	bus.Publish(eventbus.ErrorEvent{Message: "x"})
	bus.Publish(eventbus.ConfigSavedEvent{Path: "p"})
	bus.Publish(eventbus.ConfigChangedEvent{LastPage: 1})

	// a handler still running at shutdown must not outlive the channel
	go func() {
		time.Sleep(30 * time.Millisecond)
		close(slow)
	}()
	require.NotPanics(t, stop)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []eventbus.EventType{eventbus.EventError, eventbus.EventConfigSaved}, got)
}

func TestSetupLoggingFallsBackOnBadPath(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	closeLog := setupLogging(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	closeLog()

	path := filepath.Join(t.TempDir(), "ok.log")
	closeLog = setupLogging(path)
	closeLog()
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestVersionTemplate(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	defer SetVersionInfo("", "", "")
	assert.Contains(t, versionTemplate(), "commit: abc")

	SetVersionInfo("1.2.3", "none", "")
	assert.Equal(t, "pagedeck 1.2.3\n", versionTemplate())
}
