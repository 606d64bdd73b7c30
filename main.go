// infoterm CLI entry point
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/infodaemon/infoterm/internal/browser"
	"github.com/infodaemon/infoterm/internal/config"
	"github.com/infodaemon/infoterm/internal/content"
	"github.com/infodaemon/infoterm/internal/domain"
	"github.com/infodaemon/infoterm/internal/effects"
	"github.com/infodaemon/infoterm/internal/history"
	"github.com/infodaemon/infoterm/internal/shell"
	"github.com/infodaemon/infoterm/internal/store"
	"github.com/infodaemon/infoterm/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	pageFlag := flag.String("page", "", "HTML page to read terminal content from (default: bundled page)")
	userFlag := flag.String("user", "", "User name shown in the prompt")
	memoryFlag := flag.Bool("memory", false, "Keep command history for this session only")
	noRainFlag := flag.Bool("no-rain-control", false, "Start without the page's rain control")
	noPulseFlag := flag.Bool("no-pulse-control", false, "Start without the page's pulse control")
	showConfigFlag := flag.Bool("show-config", false, "Print the effective configuration and exit")
	saveConfigFlag := flag.Bool("save-config", false, "Write the effective configuration to the config file")
	flag.Parse()

	// Diagnostics go to ~/.local/share/infoterm/infoterm.log, never the screen.
	logger := config.NewLogger()
	defer logger.Close()

	if *versionFlag {
		fmt.Printf("infoterm %s\n", version)
		return
	}

	prefs := config.LoadPreferences()
	if *pageFlag != "" {
		prefs.Page = *pageFlag
	}
	if *userFlag != "" {
		prefs.User = *userFlag
	}
	if *memoryFlag {
		prefs.HistoryBackend = config.HistoryMemory
	}

	if *showConfigFlag {
		for _, e := range prefs.All() {
			fmt.Printf("%-16s %s\n", e.Key, e.Value)
		}
		fmt.Printf("%-16s %s\n", "log", config.LogPath())
		return
	}
	if *saveConfigFlag {
		if err := config.SavePreferences(prefs); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("saved %s\n", config.ConfigFilePath())
	}

	hist, closeStore := openHistory(prefs, logger)
	defer closeStore()

	var page content.Adapter
	if prefs.Page != "" {
		page = content.NewFilePage(prefs.Page, prefs.SiteURL, logger)
	} else {
		page = content.NewDefaultPage(prefs.SiteURL, logger)
	}

	session := domain.NewSession(prefs.User, prefs.ResolvedHost(), domain.Effects{
		Flicker: prefs.Flicker,
		Warp:    prefs.Warp,
	})
	logger.Printf("session %s started (origin %s, history %s)", session.ID, prefs.ResolvedOrigin(), prefs.HistoryBackend)

	// The page owns rain and pulse; a missing control stays unregistered.
	controls := effects.NewControls()
	var rain, pulse *effects.Toggle
	if !*noRainFlag {
		rain = effects.NewToggle("Rain", prefs.Rain)
		controls.Register(effects.Rain, rain)
	}
	if !*noPulseFlag {
		pulse = effects.NewToggle("Pulse", prefs.Pulse)
		controls.Register(effects.Pulse, pulse)
	}
	local := effects.NewLocal(&session.Effects, nil)

	interp, err := shell.New(shell.Options{
		Session: session,
		History: hist,
		Content: page,
		Bridge:  effects.NewMux(local, controls),
		Opener:  browser.NewSystem(),
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	m := tui.New(tui.Options{
		Interpreter: interp,
		Local:       local,
		Content:     page,
		Rain:        rain,
		Pulse:       pulse,
		Logger:      logger,
		Version:     version,
	})
	if _, err := tui.NewProgram(m).Run(); err != nil {
		logger.Printf("tui: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openHistory builds the history on the configured backend. When the
// database cannot be opened, history degrades to this session only.
func openHistory(prefs config.Preferences, logger *config.Logger) (*history.History, func()) {
	if prefs.HistoryBackend == config.HistoryMemory {
		return history.New(history.NewMemoryStorage(), logger), func() {}
	}
	st, err := store.OpenStore()
	if err != nil {
		logger.Printf("store: %v; history is session-only", err)
		return history.New(history.NewMemoryStorage(), logger), func() {}
	}
	return history.New(st.Scope(prefs.ResolvedOrigin()), logger), func() { st.Close() }
}
