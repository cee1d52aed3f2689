package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrEmptyDocument is returned when a source yields no markup.
var ErrEmptyDocument = errors.New("empty document")

// Source produces a fresh read-only view of the chat page.
type Source interface {
	Document(ctx context.Context) (*goquery.Document, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*goquery.Document, error)

func (f SourceFunc) Document(ctx context.Context) (*goquery.Document, error) {
	return f(ctx)
}

// ContentReader is the part of a browser controller a live source needs.
type ContentReader interface {
	Content(ctx context.Context) (string, error)
}

// FromController returns a source that serializes the live DOM on every call.
func FromController(ctrl ContentReader) Source {
	return SourceFunc(func(ctx context.Context) (*goquery.Document, error) {
		markup, err := ctrl.Content(ctx)
		if err != nil {
			return nil, fmt.Errorf("page content: %w", err)
		}
		return Parse(strings.NewReader(markup))
	})
}

// FromHTML returns a source over a fixed markup string.
func FromHTML(markup string) Source {
	return SourceFunc(func(ctx context.Context) (*goquery.Document, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Parse(strings.NewReader(markup))
	})
}

// FromFile returns a source that rereads path on every call.
func FromFile(path string) Source {
	return SourceFunc(func(ctx context.Context) (*goquery.Document, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		return Parse(f)
	})
}

// Parse reads markup into a goquery document.
func Parse(r io.Reader) (*goquery.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markup: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Title returns the trimmed document title, or "" when none is set.
func Title(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
