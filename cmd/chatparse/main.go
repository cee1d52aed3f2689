package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/polzovatel/chat-page-parser/internal/browser"
	"github.com/polzovatel/chat-page-parser/internal/config"
	"github.com/polzovatel/chat-page-parser/internal/conversation"
	"github.com/polzovatel/chat-page-parser/internal/snapshot"
)

type cliOptions struct {
	actions   []string
	url       string
	htmlFile  string
	storage   string
	saveState string
	wait      bool
	verbose   bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if opts.url != "" {
		cfg.ChatURL = opts.url
	}
	if opts.storage != "" {
		cfg.StoragePath = opts.storage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout); err != nil {
		log.Error().Err(err).Msg("run finished with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts cliOptions, out io.Writer) error {
	var src snapshot.Source
	if opts.htmlFile != "" {
		src = snapshot.FromFile(opts.htmlFile)
	} else {
		if cfg.ChatURL == "" {
			return errors.New("no page: set -url, CHAT_URL or -html")
		}
		launcher, err := browser.NewLauncher(ctx, browser.Options{
			Headless:   cfg.Headless,
			NavTimeout: cfg.NavTimeout,
		})
		if err != nil {
			return fmt.Errorf("browser init: %w", err)
		}
		defer launcher.Close()

		ctrl, err := launcher.NewController(ctx, cfg.StoragePath)
		if err != nil {
			return fmt.Errorf("browser controller: %w", err)
		}
		defer ctrl.Close(ctx)

		if err := ctrl.Navigate(ctx, cfg.ChatURL); err != nil {
			return err
		}
		if opts.wait {
			if err := ctrl.WaitFor(ctx, cfg.Selectors.Turn, cfg.NavTimeout); err != nil {
				warnNotChatPage(ctx, snapshot.FromController(ctrl), err)
			}
		}
		if opts.saveState != "" {
			defer func() {
				if err := ctrl.SaveState(ctx, opts.saveState); err != nil {
					log.Error().Err(err).Msg("save state")
				} else {
					log.Info().Str("path", opts.saveState).Msg("storage saved")
				}
			}()
		}
		src = snapshot.FromController(ctrl)
	}

	parser := conversation.New(src, cfg.Selectors,
		conversation.WithLogger(log.With().Str("comp", "parser").Logger()))
	return dispatchAll(ctx, parser, opts.actions, out)
}

// warnNotChatPage reports which page is open when the chat turns never showed
// up, usually a login or consent page.
func warnNotChatPage(ctx context.Context, src snapshot.Source, cause error) {
	ev := log.Warn().Err(cause)
	if doc, err := src.Document(ctx); err == nil {
		ev = ev.Str("title", snapshot.Title(doc))
	}
	ev.Msg("chat turns did not appear")
}

func dispatchAll(ctx context.Context, parser *conversation.Parser, actions []string, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	for _, action := range actions {
		call := conversation.RandomID(8)
		log.Debug().Str("call", call).Str("action", action).Msg("dispatch")
		res := parser.Dispatch(ctx, action)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode %s: %w", action, err)
		}
		log.Debug().Str("call", call).Stringer("kind", res.Kind).Msg("done")
	}
	return nil
}

func parseFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("chatparse", flag.ContinueOnError)
	actions := fs.String("action", "", "Comma-separated actions: captcha,count,parse,suggestions,finished")
	url := fs.String("url", "", "Chat page URL (overrides CHAT_URL)")
	htmlFile := fs.String("html", "", "Read a saved page instead of launching a browser")
	storage := fs.String("storage", "", "Path to Playwright storage state")
	save := fs.String("save-state", "", "Path to save updated storage state")
	wait := fs.Bool("wait", false, "Wait for chat turns before dispatching")
	verbose := fs.Bool("v", false, "Debug logging")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts := cliOptions{
		url:       strings.TrimSpace(*url),
		htmlFile:  strings.TrimSpace(*htmlFile),
		storage:   strings.TrimSpace(*storage),
		saveState: strings.TrimSpace(*save),
		wait:      *wait,
		verbose:   *verbose,
	}
	for _, a := range strings.Split(*actions, ",") {
		if a = strings.TrimSpace(a); a == "" {
			continue
		}
		if _, err := conversation.ParseAction(a); err != nil {
			return cliOptions{}, err
		}
		opts.actions = append(opts.actions, a)
	}
	if len(opts.actions) == 0 {
		return cliOptions{}, errors.New("-action is required")
	}
	return opts, nil
}
