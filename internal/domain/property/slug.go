package property

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// NewSlug builds a URL-safe slug from the title with a short random
// suffix so two listings with the same title never collide.
func NewSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = nonSlugChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "listing"
	}
	if len(base) > 60 {
		base = strings.Trim(base[:60], "-")
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return base + "-" + suffix
}
