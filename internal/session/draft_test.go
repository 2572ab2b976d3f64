package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsight-ai/sightchat/internal/domain"
)

func img(b byte) domain.ImageData {
	return domain.ImageData{MIME: "image/jpeg", Data: []byte{b}}
}

func TestDraftRemoveKeepsRelativeOrder(t *testing.T) {
	var d Draft
	d.Append(img(0), img(1), img(2))

	require.True(t, d.Remove(1))

	pending := d.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, []byte{0}, pending[0].Data)
	assert.Equal(t, []byte{2}, pending[1].Data)
}

func TestDraftRemoveOutOfRange(t *testing.T) {
	var d Draft
	d.Append(img(0))

	assert.False(t, d.Remove(-1))
	assert.False(t, d.Remove(1))
	assert.Len(t, d.Pending(), 1)
}

func TestDraftEmpty(t *testing.T) {
	var d Draft
	assert.True(t, d.Empty())

	d.SetText("x")
	assert.False(t, d.Empty())

	d.SetText("")
	d.Append(img(0))
	assert.False(t, d.Empty())
}

func TestDraftTakeClearsBothFields(t *testing.T) {
	var d Draft
	d.SetText("hello")
	d.Append(img(0), img(1))

	text, pending := d.take()
	assert.Equal(t, "hello", text)
	assert.Len(t, pending, 2)
	assert.True(t, d.Empty())
}

func TestDraftPendingIsACopy(t *testing.T) {
	var d Draft
	d.Append(img(0))

	pending := d.Pending()
	pending[0] = img(9)

	assert.Equal(t, []byte{0}, d.Pending()[0].Data)
}
