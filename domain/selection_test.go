package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	sel := NewSelection("a", "b", "a", "")
	assert.Equal(t, []string{"a", "b"}, sel.IDs())

	sel.Toggle("a")
	sel.Toggle("c")
	assert.Equal(t, []string{"b", "c"}, sel.IDs())
	assert.True(t, sel.Contains("c"))

	ids := sel.IDs()
	ids[0] = "mutated"
	assert.Equal(t, "b", sel.IDs()[0])

	sel.Clear()
	assert.Zero(t, sel.Len())

	var none *Selection
	assert.Nil(t, none.IDs())
	assert.Zero(t, none.Len())
	none.Clear()
}

func TestSession_Expiry(t *testing.T) {
	var missing *Session
	assert.True(t, missing.IsExpired(time.Now()))
	assert.Equal(t, Identity{}, missing.Identity())
}
