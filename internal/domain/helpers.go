package domain

import (
	"strings"
	"time"
)

// Slug derives the permalink for a post from its author, creation date and
// title: segments joined with "/", lowercased, spaces replaced with dashes.
// Example: ("alice", 2021-03-05, "Hello World") -> "alice/2021/03/05/hello-world".
func Slug(author string, createdAt time.Time, title string) string {
	raw := strings.Join([]string{author, createdAt.Format("2006/01/02"), title}, "/")
	return strings.ReplaceAll(strings.ToLower(raw), " ", "-")
}
