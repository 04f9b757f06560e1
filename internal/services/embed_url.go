package services

import (
	"strings"
)

// NormalizeEmbedURL rewrites a YouTube link into its embeddable form.
//
//	https://www.youtube.com/watch?v=ABC123 -> https://www.youtube.com/embed/ABC123
//	https://youtu.be/ABC123               -> https://www.youtube.com/embed/ABC123
//
// Input already in embed form (or anything else) passes through unchanged.
func NormalizeEmbedURL(rawURL string) string {
	if strings.Contains(rawURL, "watch?v=") {
		return strings.Replace(rawURL, "watch?v=", "embed/", 1)
	}
	if strings.Contains(rawURL, "youtu.be/") {
		return strings.Replace(rawURL, "youtu.be/", "www.youtube.com/embed/", 1)
	}
	return rawURL
}
