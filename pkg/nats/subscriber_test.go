package nats

import "testing"

func TestEventTypeFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"events.crisis.detected", "crisis.detected"},
		{"events.turn.recorded", "turn.recorded"},
		{"crisis.detected", "crisis.detected"},
	}

	for _, tt := range tests {
		if got := eventTypeFromSubject(tt.subject); got != tt.want {
			t.Errorf("eventTypeFromSubject(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}
