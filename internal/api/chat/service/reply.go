package chatService

import (
	"ShopAssist/pkg/nlp"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type strategy string

const (
	strategySearch      strategy = "search"
	strategyGreeting    strategy = "greeting"
	strategyHelp        strategy = "help"
	strategyGoodbye     strategy = "goodbye"
	strategyThanks      strategy = "thanks"
	strategyClarify     strategy = "clarify"
	strategyAcknowledge strategy = "acknowledge"
)

var namedStrategies = map[string]strategy{
	"greet":     strategyGreeting,
	"greeting":  strategyGreeting,
	"hello":     strategyGreeting,
	"help":      strategyHelp,
	"goodbye":   strategyGoodbye,
	"bye":       strategyGoodbye,
	"thanks":    strategyThanks,
	"thank_you": strategyThanks,
}

// Search wins regardless of confidence; everything else below the threshold
// asks the user to rephrase.
func (s *chatService) selectStrategy(intent nlp.Intent) strategy {
	name := strings.ToLower(strings.TrimSpace(intent.Name))
	action := strings.ToLower(strings.TrimSpace(intent.Action))

	if isSearch(name, action) {
		return strategySearch
	}

	if name == nlp.UnknownIntent || intent.Confidence < s.config.MinConfidence {
		return strategyClarify
	}

	if named, ok := namedStrategies[name]; ok {
		return named
	}
	if named, ok := namedStrategies[action]; ok {
		return named
	}

	return strategyAcknowledge
}

func isSearch(name string, action string) bool {
	return action == "search" || name == "search_product" || strings.HasPrefix(name, "search")
}

// extractQuery prefers the first entity, then the first noun chunk, then the
// raw text.
func extractQuery(result *nlp.ClassificationResult, raw string) string {
	if entity, ok := lo.Find(result.Entities, func(e nlp.Entity) bool {
		return strings.TrimSpace(e.Text) != ""
	}); ok {
		return strings.TrimSpace(entity.Text)
	}

	if chunk, ok := lo.Find(result.NounChunks, func(c string) bool {
		return strings.TrimSpace(c) != ""
	}); ok {
		return strings.TrimSpace(chunk)
	}

	return strings.TrimSpace(raw)
}

func buildReply(s strategy, query string) string {
	switch s {
	case strategySearch:
		return fmt.Sprintf("Searching for \"%s\". Here's what I found.", query)
	case strategyGreeting:
		return "Hi there! What are you shopping for today?"
	case strategyHelp:
		return "I can help you find products. Try something like \"show me blue hoodies\"."
	case strategyGoodbye:
		return "Thanks for stopping by. Come back any time!"
	case strategyThanks:
		return "You're welcome! Anything else I can find for you?"
	case strategyClarify:
		return "I'm not sure I understood that. Could you tell me what product you're looking for?"
	default:
		return "Got it. Let me know what you'd like to look for."
	}
}
