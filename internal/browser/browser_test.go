package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap(nil))

	cause := errors.New("target closed")
	err := wrap(cause)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "playwright: target closed")
}
