package coach

import (
	"context"
	"log"

	"teen-coach-be/pkg/hotlines"
	"teen-coach-be/pkg/llm"
	"teen-coach-be/pkg/prompt"
	"teen-coach-be/pkg/retrieval"
	"teen-coach-be/pkg/safety"
)

const (
	DefaultCardCount     = 2
	DefaultDocumentCount = 2
	DefaultResourceCount = 5
)

// TurnInput is one user message plus the conversation state it arrives with.
type TurnInput struct {
	Message    string
	Country    string
	History    []llm.Message
	IntentHint Intent
}

// TurnResult is everything a single pipeline run produced. When Crisis is
// true only Reply and Resources are populated; the model was never called.
type TurnResult struct {
	Crisis         bool
	Reply          string
	Intent         Intent
	Classification Classification
	Retrieval      retrieval.Result
	ContextBlock   string
	Resources      hotlines.Resources
}

// Pipeline runs the full per-turn sequence: crisis gate, intent heuristic,
// context retrieval, prompt assembly, then the classifying model call.
type Pipeline struct {
	retriever  *retrieval.Retriever
	classifier *Classifier
	directory     *hotlines.Directory
	cardCount     int
	docCount      int
	resourceCount int
	logger        *log.Logger
}

func NewPipeline(retriever *retrieval.Retriever, classifier *Classifier, directory *hotlines.Directory, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		retriever:     retriever,
		classifier:    classifier,
		directory:     directory,
		cardCount:     DefaultCardCount,
		docCount:      DefaultDocumentCount,
		resourceCount: DefaultResourceCount,
		logger:        logger,
	}
}

// SetRetrievalCounts overrides how many cards and documents each turn pulls.
// Non-positive values keep the current setting.
func (p *Pipeline) SetRetrievalCounts(cardCount, docCount int) {
	if cardCount > 0 {
		p.cardCount = cardCount
	}
	if docCount > 0 {
		p.docCount = docCount
	}
}

// SetResourceCount overrides how many hotline matches a resource lookup
// returns. Non-positive values keep the current setting.
func (p *Pipeline) SetResourceCount(count int) {
	if count > 0 {
		p.resourceCount = count
	}
}

// Run processes one turn. The crisis check comes before anything else: a
// flagged message returns the fixed crisis response, enriched with any
// matching hotline entries, and skips retrieval and the model entirely.
func (p *Pipeline) Run(ctx context.Context, input TurnInput) TurnResult {
	if safety.Detect(input.Message) {
		res := p.lookupResources(input)
		reply := safety.CrisisResponse()
		if len(res.Matches) > 0 {
			reply = safety.CrisisResponseWith(hotlines.AsHotlines(res.Matches))
		}
		p.logger.Printf("[WARN] Pipeline: crisis patterns detected, model call skipped")
		return TurnResult{Crisis: true, Reply: reply, Resources: res}
	}

	intent := input.IntentHint
	if intent == "" {
		intent = HeuristicIntent(input.Message)
	}

	result := p.retriever.RetrieveCombinedContext(input.Message, string(intent), p.cardCount, p.docCount)
	contextBlock := prompt.FormatCombinedContext(result)
	messages := prompt.BuildMessages(contextBlock, input.History, input.Message)

	classification := p.classifier.Classify(ctx, messages)

	out := TurnResult{
		Reply:          classification.AssistantMessage,
		Intent:         intent,
		Classification: classification,
		Retrieval:      result,
		ContextBlock:   contextBlock,
	}
	if p.directory != nil && hotlines.DetectResourceIntent(input.Message) {
		out.Resources = p.directory.ResourcesForUser(input.Message, input.Country, p.resourceCount)
	}
	return out
}

func (p *Pipeline) lookupResources(input TurnInput) hotlines.Resources {
	if p.directory == nil {
		return hotlines.Resources{Triggered: true, Crisis: true}
	}
	return p.directory.ResourcesForUser(input.Message, input.Country, p.resourceCount)
}
