package retrieval

// intentExpansions maps known intent labels to related keywords appended to
// the raw query before vectorization. Short user utterances rarely share
// vocabulary with longer reference documents; the expansion bridges that gap.
// Unknown intents expand to nothing, which is a normal non-error condition.
var intentExpansions = map[string]string{
	"anxiety":      "anxiety anxious worry nervous on edge overthinking",
	"panic":        "panic attack fear terror heart racing breathing",
	"stress":       "stress overwhelmed pressure tension too much burnout",
	"test_anxiety": "test exam anxiety studying grades blanking out school pressure",
	"sadness":      "sad down hopeless crying low mood empty",
	"loneliness":   "lonely alone isolated left out no friends disconnected",
	"anger":        "angry mad furious rage frustrated irritable snapping",
	"conflict":     "argument fight drama friends parents family disagreement",
	"sleep":        "sleep insomnia tired can't sleep night routine rest",
	"bullying":     "bullying teasing picked on mean rumors excluded harassment",
	"social_media": "social media phone scrolling comparison likes online pressure",
	"school":       "school homework classes teachers workload deadlines",
	"family":       "family parents siblings home rules expectations divorce",
	"grief":        "grief loss death missing someone mourning gone",
	"self_esteem":  "self esteem confidence worth not good enough comparing",
	"motivation":   "motivation procrastination stuck can't start energy focus",
}

// ExpandQuery appends the intent's keyword expansion to the raw query when
// the intent is known; otherwise the query passes through untouched.
func ExpandQuery(query, intent string) string {
	if intent == "" {
		return query
	}
	expansion, ok := intentExpansions[intent]
	if !ok {
		return query
	}
	return query + " " + expansion
}
