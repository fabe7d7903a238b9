package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
)

// avatarColor derives a stable hex colour from a username so the same name
// always renders the same avatar.
func avatarColor(username string) string {
	var hash int32
	for _, r := range username {
		hash = int32(r) + (hash << 5) - hash
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&sb, "%02x", byte(hash>>(i*8)))
	}
	return sb.String()
}

// GenerateAvatar builds a deterministic SVG avatar (the username's first
// letter on a hashed background colour) and returns it as a data URI.
func GenerateAvatar(username string) string {
	letter := ""
	for _, r := range username {
		letter = string(unicode.ToUpper(r))
		break
	}

	svg := fmt.Sprintf(`<svg width="128" height="128" viewBox="0 0 128 128" xmlns="http://www.w3.org/2000/svg">`+
		`<rect width="128" height="128" fill="%s" />`+
		`<text x="50%%" y="50%%" dominant-baseline="central" text-anchor="middle" font-family="Arial, sans-serif" font-size="64" fill="#ffffff">%s</text>`+
		`</svg>`, avatarColor(username), letter)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
