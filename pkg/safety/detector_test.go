package safety

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty input", "", false},
		{"direct statement", "I want to kill myself", true},
		{"mixed case", "I Want To KILL MYSELF", true},
		{"suicide mention", "I've been thinking about suicide", true},
		{"self harm hyphenated", "I keep thinking about self-harm", true},
		{"self harm spaced", "thoughts of self harm again", true},
		{"overdose", "maybe I should overdose", true},
		{"end my life", "I just want to end my life", true},
		{"cant go on contraction", "I can't go on like this", true},
		{"cant go on plain", "I cant go on", true},
		{"jump off a bridge", "I want to jump off a bridge", true},
		{"dont want to be alive", "i don't want to be alive anymore", true},
		{"plain sadness is not a crisis", "I'm so sad and stressed about school", false},
		{"friend does not contain end-of-life", "my best friend moved away", false},
		{"ending a game", "I want to end the game early", false},
		{"killing it at school", "I'm killing it in math class", false},
		{"cutting class", "I was cutting class yesterday", false},
		{"unicode text", "école était difficile aujourd'hui", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	input := "I want to kill myself"
	for i := 0; i < 100; i++ {
		if !Detect(input) {
			t.Fatalf("Detect flipped on iteration %d", i)
		}
	}
}

func TestCrisisResponse(t *testing.T) {
	msg := CrisisResponse()
	if msg == "" {
		t.Fatal("CrisisResponse returned empty message")
	}
	if !strings.Contains(msg, "988") {
		t.Error("crisis message should mention the 988 lifeline")
	}
	if !strings.Contains(msg, "911") {
		t.Error("crisis message should mention emergency services")
	}
}

func TestCrisisResponseWith(t *testing.T) {
	// No entries degrades to the fixed message.
	if got := CrisisResponseWith(nil); got != CrisisResponse() {
		t.Error("CrisisResponseWith(nil) should equal CrisisResponse()")
	}

	entries := []Hotline{
		{Name: "Samaritans", Phone: "116 123"},
		{Name: "Shout", SMS: "85258"},
	}
	msg := CrisisResponseWith(entries)
	if !strings.Contains(msg, "Samaritans") || !strings.Contains(msg, "116 123") {
		t.Error("expected phone entry in message")
	}
	if !strings.Contains(msg, "85258") {
		t.Error("expected SMS entry in message")
	}
	if !strings.Contains(msg, "988") {
		t.Error("base guidance must remain present")
	}
}
