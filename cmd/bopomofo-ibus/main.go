//go:build linux

// bopomofo-ibus is the Linux IBus engine host.
//
// It connects to the IBus daemon over D-Bus, translates IBus key
// events into engine key events, and renders the emitted states as
// preedit, candidate lookup-table, and commit-text calls.
//
// Installation:
//  1. Copy binary to /usr/local/bin/bopomofo-ibus
//  2. Run bopomofo-ibus -install
//  3. Restart IBus: ibus restart
//  4. Enable via ibus-setup or the desktop keyboard settings
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/godbus/dbus/v5"

	"bopomofo/internal/candidates"
	"bopomofo/internal/config"
	"bopomofo/internal/engine"
	"bopomofo/internal/lm"
	"bopomofo/internal/logging"
)

const (
	enginePath      = "/org/bopomofo/IBus/Engine"
	engineInterface = "org.freedesktop.IBus.Engine"
	busName         = "org.bopomofo.IBus"
)

func main() {
	installFlag := flag.Bool("install", false, "Install the IBus component")
	uninstallFlag := flag.Bool("uninstall", false, "Uninstall the IBus component")
	configPath := flag.String("config", "", "Path to a TOML config file")
	flag.Parse()

	if *installFlag {
		if err := installComponent(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to install: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Installed. Run 'ibus restart' to load.")
		return
	}
	if *uninstallFlag {
		if err := uninstallComponent(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to uninstall: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Uninstalled.")
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	dict := lm.NewDictionary()
	if cfg.Dictionary.Path != "" {
		loaded, err := lm.LoadDictionaryFile(cfg.Dictionary.Path, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load dictionary")
		}
		dict = loaded
	}
	model := lm.NewModel(dict, lm.NewUserPhrases())
	handler := engine.NewKeyHandler(model)
	cfg.Apply(handler, model)

	conn, err := dbus.SessionBus()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to session bus")
	}
	defer conn.Close()

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to request bus name")
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		logger.Fatal().Msg("bus name already taken")
	}

	eng := &IBusEngine{
		conn:    conn,
		handler: handler,
		cfg:     cfg,
		state:   engine.Empty{},
	}
	if err := conn.Export(eng, enginePath, engineInterface); err != nil {
		logger.Fatal().Err(err).Msg("failed to export engine object")
	}

	logger.Info().Str("layout", cfg.Input.Layout).Msg("ibus engine started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("shutting down")
}

// IBus keyvals the engine cares about; printable keys arrive as their
// Unicode codepoint.
const (
	ibusBackspace = 0xff08
	ibusTab       = 0xff09
	ibusReturn    = 0xff0d
	ibusEscape    = 0xff1b
	ibusHome      = 0xff50
	ibusLeft      = 0xff51
	ibusUp        = 0xff52
	ibusRight     = 0xff53
	ibusDown      = 0xff54
	ibusPageUp    = 0xff55
	ibusPageDown  = 0xff56
	ibusEnd       = 0xff57
	ibusDelete    = 0xffff
	ibusSpace     = 0x0020
)

// IBus modifier masks.
const (
	ibusShiftMask   = 1 << 0
	ibusControlMask = 1 << 2
	ibusReleaseMask = 1 << 30
)

// IBusEngine is the object exported on the session bus. IBus calls
// ProcessKeyEvent for every key; states are rendered back through the
// engine interface's commit and preedit methods.
type IBusEngine struct {
	conn    *dbus.Conn
	handler *engine.KeyHandler
	cfg     *config.Config

	state      engine.State
	controller *candidates.Controller
}

// ProcessKeyEvent handles one key event. Returning true swallows the
// key; false lets the application see it.
func (e *IBusEngine) ProcessKeyEvent(keyval, keycode, modifiers uint32) (bool, *dbus.Error) {
	if modifiers&ibusReleaseMask != 0 {
		return false, nil
	}

	key, ok := translateKey(keyval, modifiers)
	if !ok {
		return false, nil
	}

	// Hotkeys go to the candidate window while it is open.
	if e.controller != nil && key.Name == engine.KeyASCII {
		if candidate := e.controller.SelectedCandidateWithKey(key.Ascii); candidate != "" {
			e.handler.HandleCandidateSelected(candidate, e.apply)
			return true, nil
		}
	}

	handled := e.handler.Handle(key, e.state, e.apply, e.beep)
	return handled, nil
}

// FocusOut resets composition when the input context goes away.
func (e *IBusEngine) FocusOut() *dbus.Error {
	e.handler.Reset()
	e.state = engine.Empty{}
	e.controller = nil
	return nil
}

func translateKey(keyval, modifiers uint32) (engine.Key, bool) {
	key := engine.Key{
		Shift: modifiers&ibusShiftMask != 0,
		Ctrl:  modifiers&ibusControlMask != 0,
	}
	switch keyval {
	case ibusBackspace:
		key.Name = engine.KeyBackspace
	case ibusTab:
		key.Name = engine.KeyTab
	case ibusReturn:
		key.Name = engine.KeyReturn
	case ibusEscape:
		key.Name = engine.KeyEsc
	case ibusHome:
		key.Name = engine.KeyHome
	case ibusEnd:
		key.Name = engine.KeyEnd
	case ibusLeft:
		key.Name = engine.KeyLeft
	case ibusRight:
		key.Name = engine.KeyRight
	case ibusUp:
		key.Name = engine.KeyUp
	case ibusDown:
		key.Name = engine.KeyDown
	case ibusPageUp:
		key.Name = engine.KeyPageUp
	case ibusPageDown:
		key.Name = engine.KeyPageDown
	case ibusSpace:
		key.Name = engine.KeySpace
	default:
		if keyval < 0x20 || keyval > 0x7e {
			return engine.Key{}, false
		}
		key.Name = engine.KeyASCII
		key.Ascii = rune(keyval)
	}
	return key, true
}

func (e *IBusEngine) apply(state engine.State) {
	e.state = state
	switch st := state.(type) {
	case engine.Committing:
		e.commitText(st.Text)
	case engine.Inputting:
		e.controller = nil
		if st.EvictedText != "" {
			e.commitText(st.EvictedText)
		}
		e.updatePreedit(st.Buffer, st.Cursor)
		e.hideLookupTable()
	case engine.ChoosingCandidate:
		e.controller = candidates.NewController(st.Candidates, e.cfg.Candidates.Keys)
		e.controller.SetVertical(e.cfg.Candidates.Vertical)
		e.updatePreedit(st.Buffer, st.Cursor)
		e.showLookupTable(e.controller)
	case engine.Marking:
		e.updatePreedit(st.Buffer, st.Cursor)
	case engine.Empty, engine.EmptyIgnoringPrevious:
		e.controller = nil
		e.updatePreedit("", 0)
		e.hideLookupTable()
	}
}

func (e *IBusEngine) beep() {
	e.conn.Emit(enginePath, engineInterface+".Beep")
}

func (e *IBusEngine) commitText(text string) {
	e.conn.Emit(enginePath, engineInterface+".CommitText", text)
}

func (e *IBusEngine) updatePreedit(text string, cursor int) {
	e.conn.Emit(enginePath, engineInterface+".UpdatePreeditText", text, uint32(cursor), text != "")
}

func (e *IBusEngine) showLookupTable(c *candidates.Controller) {
	e.conn.Emit(enginePath, engineInterface+".UpdateLookupTable", c.CurrentPageCandidates(), true)
}

func (e *IBusEngine) hideLookupTable() {
	e.conn.Emit(enginePath, engineInterface+".HideLookupTable")
}

const componentXML = `<?xml version="1.0" encoding="utf-8"?>
<component>
  <name>org.bopomofo.IBus</name>
  <description>Bopomofo input method</description>
  <exec>/usr/local/bin/bopomofo-ibus</exec>
  <version>1.0</version>
  <license>MIT</license>
  <textdomain>bopomofo</textdomain>
  <engines>
    <engine>
      <name>bopomofo</name>
      <language>zh_TW</language>
      <license>MIT</license>
      <layout>us</layout>
      <longname>Bopomofo</longname>
      <description>Bopomofo input method</description>
    </engine>
  </engines>
</component>
`

func componentPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "ibus", "component", "bopomofo.xml"), nil
}

func installComponent() error {
	path, err := componentPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(componentXML), 0644)
}

func uninstallComponent() error {
	path, err := componentPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
