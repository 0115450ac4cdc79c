package utils

import (
	ua "github.com/mssola/user_agent"
)

// SourcePlatform classifies the client that submitted a booking based on
// its User-Agent header. The value is advisory metadata stored alongside
// the record; it plays no part in any business decision.
func SourcePlatform(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}

	parser := ua.New(userAgent)
	if parser.Bot() {
		return "bot"
	}
	if parser.Mobile() {
		return "mobile"
	}
	return "web"
}
