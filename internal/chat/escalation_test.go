package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantsHuman(t *testing.T) {
	escalating := []string{
		"je veux parler à un humain",
		"Je veux PARLER À UN HUMAIN maintenant",
		"Can I speak to a human please?",
		"I'd like to talk to someone about my order",
		"Ich möchte mit jemandem sprechen",
		"bonjour, je préfère une vraie personne",
	}
	for _, msg := range escalating {
		assert.True(t, WantsHuman(msg), "expected escalation for %q", msg)
	}

	normal := []string{
		"",
		"Bonjour, avez-vous des cartes cadeaux ?",
		"What are your humane leather alternatives?",
		"do you ship to Germany?",
	}
	for _, msg := range normal {
		assert.False(t, WantsHuman(msg), "unexpected escalation for %q", msg)
	}
}
