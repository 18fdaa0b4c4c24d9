package mail

import "strings"

// IsSpam applies the contact-form heuristics: a filled honeypot field,
// a message too short to be genuine, or embedded links.
func IsSpam(message, honeypot string) bool {
	if honeypot != "" {
		return true
	}
	if len(strings.TrimSpace(message)) < 10 {
		return true
	}
	if strings.Contains(message, "http://") || strings.Contains(message, "https://") {
		return true
	}
	return false
}
