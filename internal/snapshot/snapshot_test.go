package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContent struct {
	markup string
	err    error
	calls  int
}

func (f *fakeContent) Content(context.Context) (string, error) {
	f.calls++
	return f.markup, f.err
}

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><head><title> Copilot </title></head><body><p>x</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("p").Length())
	assert.Equal(t, "Copilot", Title(doc))

	_, err = Parse(strings.NewReader("  \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestTitleMissing(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<p>no title</p>`))
	require.NoError(t, err)
	assert.Empty(t, Title(doc))
	assert.Empty(t, Title(nil))
}

func TestFromControllerRefetches(t *testing.T) {
	fake := &fakeContent{markup: `<div id="a"></div>`}
	src := FromController(fake)

	_, err := src.Document(context.Background())
	require.NoError(t, err)
	fake.markup = `<div id="b"></div>`
	doc, err := src.Document(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls)
	assert.Equal(t, 1, doc.Find("#b").Length())

	fake.err = errors.New("target closed")
	_, err = src.Document(context.Background())
	assert.ErrorContains(t, err, "target closed")
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<main><p>saved</p></main>`), 0o600))

	doc, err := FromFile(path).Document(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "saved", doc.Find("main p").Text())

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.html")).Document(context.Background())
	assert.Error(t, err)
}

func TestFromHTMLHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FromHTML(`<p></p>`).Document(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
