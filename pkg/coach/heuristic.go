package coach

import "strings"

var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentAnxiety, []string{"panic", "anxious", "anxiety", "scared", "heart racing"}},
	{IntentSadness, []string{"sad", "depressed", "down", "hopeless", "lonely"}},
	{IntentSleep, []string{"sleep", "insomnia", "can't sleep", "tired"}},
	{IntentConflict, []string{"fight", "argument", "friend", "drama", "parents"}},
}

// HeuristicIntent is a cheap keyword-scan intent detector used to pick skill
// cards and expand document queries before the model has classified the turn.
// First matching bucket wins; otherwise the turn is treated as stress.
func HeuristicIntent(text string) Intent {
	t := strings.ToLower(text)
	for _, bucket := range intentKeywords {
		for _, kw := range bucket.keywords {
			if strings.Contains(t, kw) {
				return bucket.intent
			}
		}
	}
	return IntentStress
}
