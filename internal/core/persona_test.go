package core

import (
	"strings"
	"testing"

	"sahay.app/support-backend/internal/store"
)

func TestSelectPersona(t *testing.T) {
	if got := SelectPersona(ModeTherapist); got != therapistPersona {
		t.Error("mode \"therapist\" must select the therapist persona verbatim")
	}
	for _, mode := range []string{"", "friend", "THERAPIST", "anything"} {
		if got := SelectPersona(mode); got != companionPersona {
			t.Errorf("mode %q must fall back to the companion persona", mode)
		}
	}
}

func TestPersonasCarryContextPlaceholder(t *testing.T) {
	for name, persona := range map[string]string{"companion": companionPersona, "therapist": therapistPersona} {
		if !strings.Contains(persona, ContextPlaceholder) {
			t.Errorf("%s persona is missing the context placeholder", name)
		}
	}
}

func TestSerializeHistory(t *testing.T) {
	messages := []store.Message{
		{Role: store.RoleUser, Content: "I'm stressed about exams"},
		{Role: store.RoleAssistant, Content: "That sounds tough."},
	}
	got := SerializeHistory(messages)
	want := "user: I'm stressed about exams\nassistant: That sounds tough."
	if got != want {
		t.Errorf("SerializeHistory = %q, want %q", got, want)
	}

	if got := SerializeHistory(nil); got != "" {
		t.Errorf("empty history must serialize to empty string, got %q", got)
	}
}

func TestComposePrompt(t *testing.T) {
	system, user := ComposePrompt("PERSONA {context}", "user: hi", "how are you")

	if !strings.HasPrefix(system, "PERSONA {context}") {
		t.Errorf("system instruction must start with the persona template: %q", system)
	}
	if !strings.Contains(system, "\n\nConversation history:\nuser: hi") {
		t.Errorf("system instruction must append history under the fixed heading: %q", system)
	}
	if user != "how are you" {
		t.Errorf("user instruction must be the raw message, got %q", user)
	}
}
