// Package components holds the templ views. Components are sent whole for
// page loads and as datastar element patches for the live feed.
package components

import (
	"fmt"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"img2puz/internal/db"
)

// Version busts static asset caches; set at startup.
var Version = "dev"

func stylesheetURL() templ.SafeURL {
	return templ.SafeURL("/static/style.css?v=" + Version)
}

func conversionURL(id string) templ.SafeURL {
	return templ.SafeURL("/conversions/" + id + ".puz")
}

func displayTitle(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

func summary(r db.ListConversionsRow) string {
	return fmt.Sprintf("%dx%d, %d clues, %s, %s",
		r.Width, r.Height, r.ClueCount,
		humanize.Bytes(uint64(r.Size)),
		humanize.Time(r.CreatedAt))
}
