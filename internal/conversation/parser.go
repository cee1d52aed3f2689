// Package conversation extracts chat state from a snapshot of the chat page:
// bot turn count, the latest bot reply, suggested follow-ups and whether the
// bot is still generating. Every call reads a fresh document and keeps no
// state between calls.
package conversation

import (
	"github.com/rs/zerolog"

	"github.com/polzovatel/chat-page-parser/internal/config"
	"github.com/polzovatel/chat-page-parser/internal/snapshot"
)

// Parser runs extraction actions against a page source.
type Parser struct {
	src         snapshot.Source
	sel         config.Selectors
	suggestions SuggestionStrategy
	log         zerolog.Logger
	handlers    map[Action]handler
}

// Option customizes a Parser.
type Option func(*Parser)

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithSuggestionStrategy overrides the strategy derived from the selectors.
func WithSuggestionStrategy(s SuggestionStrategy) Option {
	return func(p *Parser) {
		if s != nil {
			p.suggestions = s
		}
	}
}

// New builds a Parser. Selectors are expected to be validated already.
func New(src snapshot.Source, sel config.Selectors, opts ...Option) *Parser {
	p := &Parser{
		src:         src,
		sel:         sel,
		suggestions: StrategyFor(sel),
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.handlers = p.defaultHandlers()
	return p
}
