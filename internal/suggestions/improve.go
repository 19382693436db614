package suggestions

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/llm"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/prompts"
)

// Improvement kinds
const (
	KindGeneral        = "general"
	KindActionOriented = "action-oriented"
	KindQuantifiable   = "quantifiable"
)

// DefaultActionVerb is prefixed to action-oriented text lacking one
const DefaultActionVerb = "Developed"

var actionVerbs = []string{
	"Developed", "Implemented", "Designed", "Led", "Managed", "Created",
	"Improved", "Optimized", "Streamlined", "Increased", "Reduced", "Achieved",
}

// ValidKind reports whether kind is a supported improvement kind
func ValidKind(kind string) bool {
	switch kind {
	case KindGeneral, KindActionOriented, KindQuantifiable:
		return true
	}
	return false
}

// StartsWithActionVerb reports whether text opens with one of the known verbs
func StartsWithActionVerb(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, verb := range actionVerbs {
		if strings.HasPrefix(lower, strings.ToLower(verb)) {
			return true
		}
	}
	return false
}

// ImproveHeuristic rewrites text without a model. Only action-oriented text
// is changed, by prefixing DefaultActionVerb when no action verb leads.
func ImproveHeuristic(text, kind string) string {
	if kind == KindActionOriented && !StartsWithActionVerb(text) {
		return DefaultActionVerb + " " + text
	}
	return text
}

// Improver rewrites resume sentences with a model when one is configured
type Improver struct {
	client llm.Client
	logger *zap.Logger
}

// NewImprover creates an Improver. A nil client uses the heuristic only.
func NewImprover(client llm.Client, logger *zap.Logger) *Improver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Improver{client: client, logger: logger}
}

// Improve rewrites text for the given kind. Model failures fall back to the
// heuristic so callers always receive text.
func (i *Improver) Improve(ctx context.Context, text, kind string) string {
	if kind == "" {
		kind = KindGeneral
	}
	if i.client == nil || strings.TrimSpace(text) == "" {
		return ImproveHeuristic(text, kind)
	}

	prompt, err := prompts.ImproveText(kind, text)
	if err != nil {
		i.logger.Error("failed to build rewrite prompt", zap.Error(err))
		return ImproveHeuristic(text, kind)
	}
	out, err := i.client.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		i.logger.Warn("model rewrite failed, using heuristic", zap.String("kind", kind), zap.Error(err))
		return ImproveHeuristic(text, kind)
	}
	return out
}
