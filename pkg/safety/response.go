package safety

import (
	"fmt"
	"strings"
)

// Hotline is the minimal slice of a resource entry the crisis message needs.
// The hotlines package maps its richer entries into this shape so safety
// stays dependency-free.
type Hotline struct {
	Name  string
	Phone string
	SMS   string
}

const baseCrisisMessage = `I'm really sorry you're feeling this way. I can't help with self-harm, but you deserve support right now.

If you're in the U.S.: call or text 988 (Suicide & Crisis Lifeline). If you're in immediate danger, call 911.

If you can, reach out to a trusted adult (parent or guardian, school counselor, coach) or a friend and ask them to stay with you while you get help.`

// CrisisResponse returns the fixed supportive message shown whenever the
// detector fires. It is always non-empty.
func CrisisResponse() string {
	return baseCrisisMessage
}

// CrisisResponseWith appends location-specific hotline entries to the fixed
// message. With no entries it degrades to CrisisResponse.
func CrisisResponseWith(entries []Hotline) string {
	if len(entries) == 0 {
		return baseCrisisMessage
	}

	var b strings.Builder
	b.WriteString(baseCrisisMessage)
	b.WriteString("\n\nLines that can help where you are:\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("- %s", e.Name))
		if e.Phone != "" {
			b.WriteString(fmt.Sprintf(" (call %s)", e.Phone))
		}
		if e.SMS != "" {
			b.WriteString(fmt.Sprintf(" (text %s)", e.SMS))
		}
		b.WriteString("\n")
	}
	return b.String()
}
