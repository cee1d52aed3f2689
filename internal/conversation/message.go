package conversation

import (
	"context"
	"encoding/json"
	"strings"
)

// Message is the parsed latest bot reply. The zero value means no bot
// message is on the page yet.
type Message struct {
	// Finalized reports that a message object was produced. It says nothing
	// about whether generation has finished.
	Finalized bool
	// Text is nil when the turn has no readable blocks yet.
	Text *string
	// CodeBlocks is reserved for structured code extraction and is always
	// empty when Text is set.
	CodeBlocks map[string]string
}

// Empty reports whether no bot turn was found.
func (m Message) Empty() bool {
	return !m.Finalized
}

// Content returns Text or "".
func (m Message) Content() string {
	if m.Text == nil {
		return ""
	}
	return *m.Text
}

func (m Message) MarshalJSON() ([]byte, error) {
	type wire struct {
		Finalized  bool               `json:"finalized,omitempty"`
		Text       *string            `json:"text,omitempty"`
		CodeBlocks *map[string]string `json:"code_blocks,omitempty"`
	}
	w := wire{Finalized: m.Finalized, Text: m.Text}
	if m.Text != nil {
		blocks := m.CodeBlocks
		if blocks == nil {
			blocks = map[string]string{}
		}
		w.CodeBlocks = &blocks
	}
	return json.Marshal(w)
}

// ParseLast extracts the latest bot turn. Traversal faults are not
// contained here.
func (p *Parser) ParseLast(ctx context.Context) (Message, error) {
	turn, ok := p.LastBotTurn(p.Turns(ctx))
	if !ok {
		return Message{}, nil
	}
	msg := Message{Finalized: true}

	blocks := turn.Blocks(p.sel.Block)
	if blocks.Length() == 0 {
		return msg, nil
	}
	parts := make([]string, 0, blocks.Length())
	for _, node := range blocks.Nodes {
		parts = append(parts, innerHTML(node))
	}
	text := strings.Join(parts, "\n")
	msg.Text = &text
	msg.CodeBlocks = map[string]string{}
	return msg, nil
}
