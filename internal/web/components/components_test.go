package components

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img2puz/internal/db"
)

func TestRecentList(t *testing.T) {
	rows := []db.ListConversionsRow{
		{ID: "a1", Title: `<b>Bold</b>`, Width: 15, Height: 15, ClueCount: 78, Size: 2048, CreatedAt: time.Now()},
		{ID: "b2", Width: 3, Height: 3, ClueCount: 4, Size: 90, CreatedAt: time.Now()},
	}

	var sb strings.Builder
	require.NoError(t, RecentList(rows).Render(context.Background(), &sb))
	html := sb.String()

	assert.True(t, strings.HasPrefix(html, `<ul id="recent">`))
	assert.Contains(t, html, `href="/conversions/a1.puz"`)
	assert.Contains(t, html, "&lt;b&gt;Bold&lt;/b&gt;")
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "15x15, 78 clues, 2.0 kB")
	assert.Contains(t, html, "Untitled</a> 3x3, 4 clues, 90 B")
}

func TestRecentList_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, RecentList(nil).Render(context.Background(), &sb))
	assert.Contains(t, sb.String(), "Nothing converted yet")
}

func TestHome_PrefillsSession(t *testing.T) {
	var sb strings.Builder
	page := Layout("img2puz", Home(`Ann "A"`, "(c) Ann", nil))
	require.NoError(t, page.Render(context.Background(), &sb))
	html := sb.String()

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `name="author" value="Ann &#34;A&#34;"`)
	assert.Contains(t, html, `name="copyright" value="(c) Ann"`)
	assert.Contains(t, html, `data-init="@get('/conversions/feed')"`)
	assert.True(t, strings.HasSuffix(html, "</body></html>"))
}
