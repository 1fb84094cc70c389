package chat

import "strings"

// escalationKeywords are phrasings that signal the visitor wants a human
// agent instead of the assistant. Matching is case-insensitive substring;
// the list is fixed at build time.
var escalationKeywords = []string{
	// French
	"parler à un humain",
	"parler a un humain",
	"parler à quelqu'un",
	"parler a quelqu'un",
	"un vrai conseiller",
	"une vraie personne",
	"agent humain",
	// English
	"speak to human",
	"speak to a human",
	"talk to a human",
	"talk to someone",
	"speak with someone",
	"real person",
	"human agent",
	// German
	"mit jemandem sprechen",
	"mit einem menschen sprechen",
	"echte person",
}

// WantsHuman reports whether the message asks to be handed to a human
// agent. Pure function, no I/O.
func WantsHuman(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range escalationKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
