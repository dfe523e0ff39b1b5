package main

import (
	"fmt"
	"log"
	"os"

	"teen-coach-be/internal/config"
	"teen-coach-be/pkg/cards"
	"teen-coach-be/pkg/coach"
	"teen-coach-be/pkg/docindex"
	"teen-coach-be/pkg/retrieval"

	"github.com/fatih/color"
)

// Offline retrieval diagnostic: runs a set of probe queries through the
// document index and card store and prints what each turn would retrieve.
func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[CHECK] ", log.LstdFlags)

	skillCards, err := cards.LoadCards(cfg.Data.CardsPath)
	if err != nil {
		color.Red("Failed to load skill cards: %v", err)
		os.Exit(1)
	}
	color.Cyan("🔍 Retrieval diagnostic: %d cards, docs dir %s\n", len(skillCards), cfg.Data.DocumentsDir)

	library := docindex.NewLibrary(cfg.Data.DocumentsDir, cfg.Retrieval.MaxVocabulary, logger)
	searcher := retrieval.NewSearcher(library, cfg.Retrieval.SimilarityThreshold, logger)
	retriever := retrieval.NewRetriever(skillCards, searcher)

	docs := library.Documents()
	color.Green("Indexed %d documents", len(docs))
	for _, d := range docs {
		fmt.Printf("  - %s (%d chars)\n", d.Title, len(d.Content))
	}

	queries := []string{
		"I'm panicking before my math test",
		"I can't sleep at night",
		"my friends are ignoring me",
		"how does box breathing work",
		"everything is too much right now",
	}

	for _, q := range queries {
		intent := coach.HeuristicIntent(q)
		color.Yellow("\nQuery: %q (intent: %s)", q, intent)

		result := retriever.RetrieveCombinedContext(q, string(intent), cfg.Retrieval.CardCount, cfg.Retrieval.DocumentCount)

		if len(result.SkillCards) == 0 {
			color.Red("  no cards matched")
		}
		for _, c := range result.SkillCards {
			fmt.Printf("  card: %s %v\n", c.Title, c.Tags)
		}

		if len(result.Documents) == 0 {
			color.Red("  no documents above threshold %.3f", cfg.Retrieval.SimilarityThreshold)
		}
		for _, d := range result.Documents {
			fmt.Printf("  doc:  %s (similarity %.4f)\n", d.Document.Title, d.Similarity)
			excerpt := d.Excerpt
			if len(excerpt) > 160 {
				excerpt = excerpt[:160] + "..."
			}
			fmt.Printf("        %s\n", excerpt)
		}
	}

	color.Cyan("\nDone.")
}
