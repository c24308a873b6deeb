package filing

import (
	"log/slog"
	"strings"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

// DefaultMinConfidence is the hint confidence below which the
// classifier falls back to the general location.
const DefaultMinConfidence = 0.5

// Classifier maps upload flows and content-derived hints onto filing
// contexts. Explicit contexts pass through after validation;
// hint-based classification never fails, it falls back.
type Classifier struct {
	log           *slog.Logger
	minConfidence float64
}

func NewClassifier(log *slog.Logger, minConfidence float64) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Classifier{log: log, minConfidence: minConfidence}
}

// FromContext is the explicit-upload entry point: the caller already
// knows where the file belongs, so the context is used as-is once the
// required fields are present.
func (c *Classifier) FromContext(ctx domain.FilingContext) (domain.FilingContext, error) {
	if !ctx.Location.Valid() {
		return domain.FilingContext{}, domain.ValidationError("upload_location", "is not a recognized upload location")
	}
	if ctx.Location.RequiresDiscipline() && strings.TrimSpace(ctx.DisciplineOrTrade) == "" {
		return domain.FilingContext{}, domain.ValidationError("discipline_or_trade", "is required for this upload location")
	}
	return ctx, nil
}

// FromHint is the queued-extraction entry point. It maps the hint's
// inferred category to the nearest context variant and reports whether
// it fell back to the general default. Fallback is a warning, never an
// error: filing must not be rejected on low classification confidence.
func (c *Classifier) FromHint(hint domain.ClassificationHint) (domain.FilingContext, bool) {
	if hint.Confidence < c.minConfidence {
		return c.fallback(hint, "confidence below threshold")
	}

	switch strings.ToLower(strings.TrimSpace(hint.Category)) {
	case domain.HintCategoryInvoice:
		if strings.TrimSpace(hint.FirmName) == "" {
			return c.fallback(hint, "invoice hint without firm name")
		}
		return domain.FilingContext{
			Location:       domain.LocationGeneral,
			FirmName:       hint.FirmName,
			Invoice:        true,
			AddToDocuments: true,
		}, false
	case domain.HintCategoryConsultantSubmission:
		if strings.TrimSpace(hint.DisciplineOrTrade) == "" {
			return c.fallback(hint, "consultant hint without discipline")
		}
		return domain.FilingContext{
			Location:          domain.LocationConsultantCard,
			DisciplineOrTrade: hint.DisciplineOrTrade,
			FirmName:          hint.FirmName,
			SectionName:       hint.SectionName,
			AddToDocuments:    true,
		}, false
	case domain.HintCategoryContractorSubmission:
		if strings.TrimSpace(hint.DisciplineOrTrade) == "" {
			return c.fallback(hint, "contractor hint without trade")
		}
		return domain.FilingContext{
			Location:          domain.LocationContractorCard,
			DisciplineOrTrade: hint.DisciplineOrTrade,
			FirmName:          hint.FirmName,
			SectionName:       hint.SectionName,
			AddToDocuments:    true,
		}, false
	case domain.HintCategoryPlan:
		return domain.FilingContext{
			Location:       domain.LocationPlanCard,
			SectionName:    hint.SectionName,
			AddToDocuments: true,
		}, false
	case domain.HintCategoryGeneral:
		return domain.FilingContext{
			Location:       domain.LocationGeneral,
			FirmName:       hint.FirmName,
			AddToDocuments: true,
		}, false
	default:
		return c.fallback(hint, "unknown category")
	}
}

func (c *Classifier) fallback(hint domain.ClassificationHint, reason string) (domain.FilingContext, bool) {
	c.log.Warn("classification_fallback",
		"category", hint.Category,
		"confidence", hint.Confidence,
		"reason", reason,
	)
	return domain.FilingContext{
		Location:       domain.LocationGeneral,
		AddToDocuments: true,
	}, true
}
