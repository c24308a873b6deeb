package filing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

func TestFromContextPassThrough(t *testing.T) {
	c := NewClassifier(nil, 0)
	in := domain.FilingContext{
		Location:          domain.LocationConsultantCard,
		DisciplineOrTrade: "Structural",
		FirmName:          "Beam Co",
		AddToDocuments:    true,
	}

	out, err := c.FromContext(in)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFromContextRejectsMissingDiscipline(t *testing.T) {
	c := NewClassifier(nil, 0)

	_, err := c.FromContext(domain.FilingContext{Location: domain.LocationContractorCard})

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrValidation))
}

func TestFromContextRejectsUnknownLocation(t *testing.T) {
	c := NewClassifier(nil, 0)

	_, err := c.FromContext(domain.FilingContext{Location: "drive_by"})

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrValidation))
}

func TestFromHintMapsInvoice(t *testing.T) {
	c := NewClassifier(nil, 0)

	ctx, fellBack := c.FromHint(domain.ClassificationHint{
		Category:   domain.HintCategoryInvoice,
		Confidence: 0.9,
		FirmName:   "Test Construction Co",
	})

	assert.False(t, fellBack)
	assert.Equal(t, domain.LocationGeneral, ctx.Location)
	assert.True(t, ctx.Invoice)
	assert.True(t, ctx.AddToDocuments)
	assert.Equal(t, "Test Construction Co", ctx.FirmName)
}

func TestFromHintMapsSubmissions(t *testing.T) {
	c := NewClassifier(nil, 0)

	consultant, fellBack := c.FromHint(domain.ClassificationHint{
		Category:          domain.HintCategoryConsultantSubmission,
		Confidence:        0.8,
		DisciplineOrTrade: "Electrical",
		FirmName:          "Sparks",
	})
	assert.False(t, fellBack)
	assert.Equal(t, domain.LocationConsultantCard, consultant.Location)
	assert.Equal(t, "Electrical", consultant.DisciplineOrTrade)

	contractor, fellBack := c.FromHint(domain.ClassificationHint{
		Category:          domain.HintCategoryContractorSubmission,
		Confidence:        0.8,
		DisciplineOrTrade: "Concrete",
	})
	assert.False(t, fellBack)
	assert.Equal(t, domain.LocationContractorCard, contractor.Location)
}

func TestFromHintUnknownCategoryFallsBack(t *testing.T) {
	c := NewClassifier(nil, 0)

	ctx, fellBack := c.FromHint(domain.ClassificationHint{Category: "meeting_minutes", Confidence: 0.99})

	assert.True(t, fellBack)
	assert.Equal(t, domain.LocationGeneral, ctx.Location)
	assert.False(t, ctx.Invoice)
	assert.True(t, ctx.AddToDocuments)
}

func TestFromHintLowConfidenceFallsBack(t *testing.T) {
	c := NewClassifier(nil, 0.6)

	ctx, fellBack := c.FromHint(domain.ClassificationHint{
		Category:   domain.HintCategoryInvoice,
		Confidence: 0.3,
		FirmName:   "Acme",
	})

	assert.True(t, fellBack)
	assert.Equal(t, domain.LocationGeneral, ctx.Location)
}

func TestFromHintSubmissionWithoutDisciplineFallsBack(t *testing.T) {
	c := NewClassifier(nil, 0)

	_, fellBack := c.FromHint(domain.ClassificationHint{
		Category:   domain.HintCategoryConsultantSubmission,
		Confidence: 0.9,
	})

	assert.True(t, fellBack)
}

func TestFromHintFallbackResolvesToPlanMisc(t *testing.T) {
	c := NewClassifier(nil, 0)

	ctx, fellBack := c.FromHint(domain.ClassificationHint{Category: "???", Confidence: 0.1})
	require.True(t, fellBack)

	resolved, err := Resolve(ResolveInput{Context: ctx, OriginalFilename: "odd.pdf"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Plan/Misc", resolved.FolderPath)
}
