package conversation

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Turn is one rendered message of the conversation.
type Turn struct {
	// Index is the document position among all turns.
	Index int
	// Role is the value of the role marker attribute, "" when absent.
	Role string

	sel *goquery.Selection
}

// Blocks returns the paragraph sub-blocks of the turn in document order.
func (t Turn) Blocks(selector string) *goquery.Selection {
	return t.sel.Find(selector)
}

// Turns returns every chat turn on the page in document order. Lookup
// faults are logged and yield an empty result.
func (p *Parser) Turns(ctx context.Context) (turns []Turn) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn().Interface("panic", r).Msg("locate chat turns")
			turns = []Turn{}
		}
	}()
	doc, err := p.src.Document(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("locate chat turns")
		return []Turn{}
	}
	return p.turnsIn(doc)
}

func (p *Parser) turnsIn(doc *goquery.Document) []Turn {
	nodes := doc.Find(p.sel.Turn)
	turns := make([]Turn, 0, nodes.Length())
	nodes.Each(func(i int, s *goquery.Selection) {
		role, _ := s.Attr(p.sel.RoleAttr)
		turns = append(turns, Turn{Index: i, Role: role, sel: s})
	})
	return turns
}

// IsBot reports whether t is an assistant turn. Counting and selection both
// go through this check.
func (p *Parser) IsBot(t Turn) bool {
	return t.Role == p.sel.BotRole
}

// LastBotTurn scans from the most recent turn backward.
func (p *Parser) LastBotTurn(turns []Turn) (Turn, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if p.IsBot(turns[i]) {
			return turns[i], true
		}
	}
	return Turn{}, false
}

// CountBot returns the number of bot turns. It never fails; a fault is
// logged and the count reached so far is returned.
func (p *Parser) CountBot(ctx context.Context) (count int) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Err(fmt.Errorf("%v", r)).Int("counted", count).Msg("count bot turns")
		}
	}()
	for _, t := range p.Turns(ctx) {
		if p.IsBot(t) {
			count++
		}
	}
	return count
}
