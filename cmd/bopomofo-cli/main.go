// bopomofo-cli is a line-mode host for the composition engine.
//
// It reads keystrokes from stdin and prints every state the engine
// emits, which makes it useful for trying layouts and dictionaries
// without wiring up a real IME framework. Each input line is a run of
// keys; a few commands stand in for non-printable keys:
//
//	:space :enter :esc :tab :bs :del :left :right :home :end :down
//	:sel <hotkey>   select a candidate by hotkey
//	:quit
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"bopomofo/internal/candidates"
	"bopomofo/internal/config"
	"bopomofo/internal/engine"
	"bopomofo/internal/lm"
	"bopomofo/internal/logging"
)

type options struct {
	Config     string `short:"c" long:"config" description:"Path to a TOML config file"`
	Dictionary string `short:"d" long:"dictionary" description:"Path to the dictionary file"`
	Layout     string `short:"l" long:"layout" description:"Keyboard layout override"`
	Verbose    bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if opts.Layout != "" {
		cfg.Input.Layout = opts.Layout
		cfg.Validate()
	}
	if opts.Dictionary != "" {
		cfg.Dictionary.Path = opts.Dictionary
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	logger := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	dict := lm.NewDictionary()
	if cfg.Dictionary.Path != "" {
		loaded, err := lm.LoadDictionaryFile(cfg.Dictionary.Path, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load dictionary")
		}
		dict = loaded
	} else {
		logger.Warn().Msg("no dictionary configured; only reserved keys will compose")
	}

	user := lm.NewUserPhrases()
	if cfg.UserPhrases.StorePath != "" {
		store, err := lm.OpenStore(cfg.UserPhrases.StorePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open user-phrase store")
		}
		defer store.Close()
		user, err = lm.NewUserPhrasesWithStore(store)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load user phrases")
		}
		if cfg.UserPhrases.WatchForChanges {
			w, err := lm.WatchStore(cfg.UserPhrases.StorePath, store, user, nil, logger)
			if err != nil {
				logger.Warn().Err(err).Msg("user-phrase watching disabled")
			} else {
				defer w.Stop()
			}
		}
	}

	model := lm.NewModel(dict, user)
	handler := engine.NewKeyHandler(model)
	cfg.Apply(handler, model)

	session := &session{
		handler: handler,
		cfg:     cfg,
		state:   engine.Empty{},
	}
	logger.Info().Str("layout", cfg.Input.Layout).Msg("ready")
	session.run(os.Stdin, os.Stdout)
}

// session keeps the host-side view of the engine: the last emitted
// state and, while choosing, the candidate controller.
type session struct {
	handler    *engine.KeyHandler
	cfg        *config.Config
	state      engine.State
	controller *candidates.Controller
}

func (s *session) run(in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == ":quit" {
			return
		}
		if key, ok := strings.CutPrefix(line, ":sel "); ok && len(key) > 0 {
			s.selectCandidate(out, rune(key[0]))
			continue
		}
		if key, ok := namedKey(line); ok {
			s.feed(out, key)
			continue
		}
		for _, ch := range line {
			s.feed(out, engine.AsciiKey(ch))
		}
	}
}

func namedKey(line string) (engine.Key, bool) {
	switch line {
	case ":space":
		return engine.NamedKey(engine.KeySpace), true
	case ":enter":
		return engine.NamedKey(engine.KeyReturn), true
	case ":esc":
		return engine.NamedKey(engine.KeyEsc), true
	case ":tab":
		return engine.NamedKey(engine.KeyTab), true
	case ":bs":
		return engine.NamedKey(engine.KeyBackspace), true
	case ":del":
		return engine.NamedKey(engine.KeyDelete), true
	case ":left":
		return engine.NamedKey(engine.KeyLeft), true
	case ":right":
		return engine.NamedKey(engine.KeyRight), true
	case ":home":
		return engine.NamedKey(engine.KeyHome), true
	case ":end":
		return engine.NamedKey(engine.KeyEnd), true
	case ":down":
		return engine.NamedKey(engine.KeyDown), true
	}
	return engine.Key{}, false
}

func (s *session) feed(out *os.File, key engine.Key) {
	handled := s.handler.Handle(key, s.state, func(state engine.State) {
		s.apply(out, state)
	}, func() {
		fmt.Fprintln(out, "[beep]")
	})
	if !handled {
		fmt.Fprintf(out, "[passthrough] %q\n", key.Ascii)
	}
}

func (s *session) selectCandidate(out *os.File, hotkey rune) {
	if s.controller == nil {
		fmt.Fprintln(out, "[beep] no candidate window")
		return
	}
	candidate := s.controller.SelectedCandidateWithKey(hotkey)
	if candidate == "" {
		fmt.Fprintln(out, "[beep] no such candidate")
		return
	}
	s.handler.HandleCandidateSelected(candidate, func(state engine.State) {
		s.apply(out, state)
	})
}

func (s *session) apply(out *os.File, state engine.State) {
	s.state = state
	switch st := state.(type) {
	case engine.Committing:
		fmt.Fprintf(out, "commit: %s\n", st.Text)
	case engine.Inputting:
		s.controller = nil
		if st.EvictedText != "" {
			fmt.Fprintf(out, "commit (evicted): %s\n", st.EvictedText)
		}
		fmt.Fprintf(out, "buffer: %q cursor: %d", st.Buffer, st.Cursor)
		if st.Tooltip != "" {
			fmt.Fprintf(out, " tooltip: %s", st.Tooltip)
		}
		fmt.Fprintln(out)
	case engine.ChoosingCandidate:
		s.controller = candidates.NewController(st.Candidates, s.cfg.Candidates.Keys)
		s.controller.SetVertical(s.cfg.Candidates.Vertical)
		page := s.controller.CurrentPageCandidates()
		keys := s.controller.Keys()
		fmt.Fprintf(out, "candidates:")
		for i, c := range page {
			fmt.Fprintf(out, " %c)%s", keys[i], c)
		}
		fmt.Fprintln(out)
	case engine.Marking:
		fmt.Fprintf(out, "marking: %q [%q] %q reading: %s acceptable: %v\n",
			st.Head, st.Marked, st.Tail, st.Reading, st.Acceptable)
	case engine.EmptyIgnoringPrevious, engine.Empty:
		s.controller = nil
		fmt.Fprintln(out, "empty")
	}
}
