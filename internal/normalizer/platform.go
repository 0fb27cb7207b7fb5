package normalizer

import (
	"strings"
)

// Canonical platform tokens.
const (
	Facebook  = "facebook"
	Instagram = "instagram"
	TikTok    = "tiktok"
)

// UnknownPlatformLabel is shown when a platform can't be recognized.
const UnknownPlatformLabel = "la red social"

// CanonicalPlatform returns the token used for platform equality filters.
// Empty input is treated as facebook; unrecognized values pass through lower-cased.
func CanonicalPlatform(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case s == "":
		return Facebook
	case s == "fb" || strings.Contains(s, "face"):
		return Facebook
	case s == "ig" || strings.Contains(s, "insta"):
		return Instagram
	case s == "tt" || strings.Contains(s, "tiktok"):
		return TikTok
	}

	return s
}

// PlatformLabel returns a human readable platform name. It is meant for display only.
func PlatformLabel(raw string) string {
	s := strings.ToLower(raw)

	switch {
	case strings.Contains(s, "insta") || strings.Contains(s, "ig"):
		return "Instagram"
	case strings.Contains(s, "tiktok") || strings.Contains(s, "tt"):
		return "TikTok"
	case strings.Contains(s, "face") || strings.Contains(s, "fb"):
		return "Facebook"
	}

	return UnknownPlatformLabel
}
