package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/polzovatel/chat-page-parser/internal/config"
)

// ErrNotImplemented is returned by the placeholder suggestion strategy.
var ErrNotImplemented = errors.New("not implemented")

// SuggestionStrategy pulls follow-up prompts out of a page snapshot.
type SuggestionStrategy interface {
	Name() string
	Suggestions(doc *goquery.Document) ([]string, error)
}

// Unimplemented is used until the host UI exposes a stable suggestion selector.
type Unimplemented struct{}

func (Unimplemented) Name() string { return "unimplemented" }

func (Unimplemented) Suggestions(*goquery.Document) ([]string, error) {
	return nil, ErrNotImplemented
}

// ButtonText collects the visible text of every element matching Selector.
type ButtonText struct {
	Selector string
}

func (b ButtonText) Name() string { return "button-text" }

func (b ButtonText) Suggestions(doc *goquery.Document) ([]string, error) {
	out := []string{}
	doc.Find(b.Selector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			out = append(out, text)
		}
	})
	return out, nil
}

// StrategyFor picks ButtonText when a suggestion selector is configured.
func StrategyFor(sel config.Selectors) SuggestionStrategy {
	if strings.TrimSpace(sel.Suggestion) == "" {
		return Unimplemented{}
	}
	return ButtonText{Selector: sel.Suggestion}
}

// Suggestions never fails. Faults are logged and an empty list is returned.
func (p *Parser) Suggestions(ctx context.Context) (out []string) {
	out = []string{}
	logger := p.log.With().Str("strategy", p.suggestions.Name()).Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Err(fmt.Errorf("%v", r)).Msg("parse suggestions")
			out = []string{}
		}
	}()

	doc, err := p.src.Document(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("parse suggestions")
		return out
	}
	found, err := p.suggestions.Suggestions(doc)
	switch {
	case errors.Is(err, ErrNotImplemented):
		logger.Debug().Msg("suggestion extraction not implemented")
		return out
	case err != nil:
		logger.Warn().Err(err).Msg("parse suggestions")
		return out
	}
	if found == nil {
		return out
	}
	return found
}
