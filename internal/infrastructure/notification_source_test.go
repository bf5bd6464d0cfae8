package infrastructure

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shazam-dl-go/internal/domain"
)

func TestTermuxNotificationSource_Active(t *testing.T) {
	runner := &fakeRunner{output: []byte(`[
		{"id": 1, "packageName": "com.shazam.android", "title": "Bohemian Rhapsody", "content": "Queen"},
		{"id": 2, "packageName": "com.whatsapp", "title": "Alice", "content": "hi"}
	]`)}
	source := NewTermuxNotificationSource("termux-notification-list", runner)

	notifications, err := source.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "com.shazam.android", notifications[0].PackageName)
	assert.Equal(t, "Bohemian Rhapsody", notifications[0].Title)
	assert.Equal(t, "Queen", notifications[0].Content)
	assert.Equal(t, "termux-notification-list", runner.lastCall().name)
}

func TestTermuxNotificationSource_ParseError(t *testing.T) {
	raw := "not json " + strings.Repeat("x", 500)
	runner := &fakeRunner{output: []byte(raw)}
	source := NewTermuxNotificationSource("termux-notification-list", runner)

	_, err := source.Active(context.Background())
	require.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), raw[:100])
	assert.NotContains(t, err.Error(), raw[:101])
}

func TestTermuxNotificationSource_ToolMissing(t *testing.T) {
	runner := &fakeRunner{err: domain.ErrToolMissing}
	source := NewTermuxNotificationSource("termux-notification-list", runner)

	_, err := source.Active(context.Background())
	assert.ErrorIs(t, err, domain.ErrToolMissing)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 100))
	assert.Equal(t, "abc...", excerpt("abcdef", 3))
	assert.Equal(t, "ééé...", excerpt("éééé", 3))
	assert.Equal(t, "éééé", excerpt("éééé", 4))
}
