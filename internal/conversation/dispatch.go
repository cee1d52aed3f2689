package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is wrapped in the error envelope for tokens outside the
// action set.
var ErrUnknownAction = errors.New("unknown action")

// Action selects the extraction performed by Dispatch.
type Action string

const (
	ActionCaptcha     Action = "captcha"
	ActionCount       Action = "count"
	ActionParse       Action = "parse"
	ActionSuggestions Action = "suggestions"
	ActionFinished    Action = "finished"
)

// Actions lists the accepted tokens.
var Actions = []Action{ActionCaptcha, ActionCount, ActionParse, ActionSuggestions, ActionFinished}

// ParseAction validates a token.
func ParseAction(s string) (Action, error) {
	a := Action(strings.TrimSpace(s))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Kind tags the payload carried by a Result.
type Kind int

const (
	KindNone Kind = iota
	KindCount
	KindMessage
	KindSuggestions
	KindFinished
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindMessage:
		return "message"
	case KindSuggestions:
		return "suggestions"
	case KindFinished:
		return "finished"
	case KindError:
		return "error"
	default:
		return "none"
	}
}

// Result is the outcome of one Dispatch call. Only the field matching Kind
// is meaningful.
type Result struct {
	Kind        Kind
	Count       int
	Message     Message
	Suggestions []string
	Finished    bool
	Error       string
}

// MarshalJSON emits the bare payload: a number, a bool, a message object,
// a string array, {"error": "..."} or null.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindCount:
		return json.Marshal(r.Count)
	case KindMessage:
		return json.Marshal(r.Message)
	case KindSuggestions:
		s := r.Suggestions
		if s == nil {
			s = []string{}
		}
		return json.Marshal(s)
	case KindFinished:
		return json.Marshal(r.Finished)
	case KindError:
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	default:
		return []byte("null"), nil
	}
}

type handler func(ctx context.Context) (Result, error)

func (p *Parser) defaultHandlers() map[Action]handler {
	return map[Action]handler{
		ActionCaptcha: func(context.Context) (Result, error) {
			return Result{Kind: KindNone}, nil
		},
		ActionCount: func(ctx context.Context) (Result, error) {
			return Result{Kind: KindCount, Count: p.CountBot(ctx)}, nil
		},
		ActionParse: func(ctx context.Context) (Result, error) {
			msg, err := p.ParseLast(ctx)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: KindMessage, Message: msg}, nil
		},
		ActionSuggestions: func(ctx context.Context) (Result, error) {
			return Result{Kind: KindSuggestions, Suggestions: p.Suggestions(ctx)}, nil
		},
		ActionFinished: func(ctx context.Context) (Result, error) {
			done, err := p.Finished(ctx)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: KindFinished, Finished: done}, nil
		},
	}
}

// Dispatch runs one action. Errors and panics from the action never escape;
// they come back as a KindError result.
func (p *Parser) Dispatch(ctx context.Context, action string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = p.fault(action, fmt.Errorf("%v", r))
		}
	}()

	h, ok := p.handlers[Action(action)]
	if !ok {
		return p.fault(action, fmt.Errorf("%w: %q", ErrUnknownAction, action))
	}
	res, err := h(ctx)
	if err != nil {
		return p.fault(action, err)
	}
	return res
}

func (p *Parser) fault(action string, err error) Result {
	p.log.Error().Err(err).Str("action", action).Msg("dispatch")
	return Result{Kind: KindError, Error: err.Error()}
}
