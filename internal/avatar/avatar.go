package avatar

import (
	"net/url"
	"strings"
)

const baseURL = "https://api.dicebear.com/7.x/initials/svg"

// URL returns the initials avatar for a display name.
func URL(name string) string {
	seed := strings.Join(strings.Fields(name), "+")
	return baseURL + "?seed=" + url.PathEscape(seed)
}
