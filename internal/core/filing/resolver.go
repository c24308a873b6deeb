// Package filing turns an upload's filing context into a concrete
// folder path and versioned display name inside the project taxonomy.
package filing

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/taxonomy"
)

// Category labels used in display names, one per context kind.
const (
	CategoryInvoice    = "Invoice"
	CategorySubmission = "Submission"
	CategoryPlan       = "Plan"
	CategoryDocument   = "Document"
)

// ResolveInput carries everything the resolver needs besides the
// existing-documents snapshot.
type ResolveInput struct {
	Context          domain.FilingContext
	OriginalFilename string
	Override         domain.FilingOverride
}

// Resolve computes the destination folder and a display name unique
// among the given live documents. It is pure: the same input and
// snapshot always produce the same result. Callers must re-resolve
// with a fresh snapshot when the persistence layer reports a
// display-name collision.
func Resolve(in ResolveInput, existing []domain.DocumentRef) (domain.ResolvedFiling, error) {
	if err := checkOverride(in.Override); err != nil {
		return domain.ResolvedFiling{}, err
	}

	overridden := !in.Override.Empty()

	folder := strings.TrimSpace(in.Override.Path)
	if folder == "" {
		var err error
		folder, err = folderForContext(in.Context)
		if err != nil {
			return domain.ResolvedFiling{}, err
		}
	}

	displayName := in.Override.DisplayName
	if displayName == "" {
		entity, category := namingParts(in.Context)
		seq := nextSequence(existing, folder, entity, category)
		displayName = fmt.Sprintf("%s_%s_%03d%s", entity, category, seq, extensionOf(in.OriginalFilename))
	}

	return domain.ResolvedFiling{
		FolderPath:         folder,
		DisplayName:        displayName,
		ManuallyOverridden: overridden,
		Context:            in.Context,
	}, nil
}

func checkOverride(o domain.FilingOverride) error {
	if o.Path != "" && strings.TrimSpace(o.Path) == "" {
		return domain.WrapError(domain.ErrOverridePath, "check override", fmt.Errorf("path is blank"))
	}
	return nil
}

// folderForContext maps a context to its taxonomy destination. Card
// locations fail hard when the discipline/trade is missing; the
// resolver never guesses a folder.
func folderForContext(ctx domain.FilingContext) (string, error) {
	switch ctx.Location {
	case domain.LocationGeneral:
		if ctx.Invoice {
			if strings.TrimSpace(ctx.FirmName) == "" {
				return "", domain.ValidationError("firm_name", "is required for invoice filing")
			}
			return taxonomy.TierFinance + "/Invoices", nil
		}
		return taxonomy.TierPlan + "/Misc", nil
	case domain.LocationConsultantCard:
		d := strings.TrimSpace(ctx.DisciplineOrTrade)
		if d == "" {
			return "", domain.ValidationError("discipline_or_trade", "is required for consultant card uploads")
		}
		return taxonomy.TierConsultants + "/" + d, nil
	case domain.LocationContractorCard:
		d := strings.TrimSpace(ctx.DisciplineOrTrade)
		if d == "" {
			return "", domain.ValidationError("discipline_or_trade", "is required for contractor card uploads")
		}
		return taxonomy.TierContractors + "/" + d, nil
	case domain.LocationPlanCard:
		return taxonomy.TierPlan + "/Misc", nil
	default:
		return "", domain.ValidationError("upload_location", "is not a recognized upload location")
	}
}

// namingParts picks the entity and category segments of the display
// name. The entity falls back to a tier-appropriate label when the
// context carries no usable name.
func namingParts(ctx domain.FilingContext) (entity, category string) {
	switch ctx.Location {
	case domain.LocationConsultantCard, domain.LocationContractorCard:
		entity = sanitizeEntity(ctx.FirmName)
		if entity == "" {
			entity = sanitizeEntity(ctx.DisciplineOrTrade)
		}
		return entity, CategorySubmission
	case domain.LocationPlanCard:
		entity = sanitizeEntity(ctx.SectionName)
		if entity == "" {
			entity = "Plan"
		}
		return entity, CategoryPlan
	default:
		if ctx.Invoice {
			return sanitizeEntity(ctx.FirmName), CategoryInvoice
		}
		entity = sanitizeEntity(ctx.FirmName)
		if entity == "" {
			entity = "General"
		}
		return entity, CategoryDocument
	}
}

// nextSequence scans the snapshot for live documents in the same
// folder carrying the same Entity_Category prefix and returns
// max(sequence)+1, starting at 1.
func nextSequence(existing []domain.DocumentRef, folder, entity, category string) int {
	prefix := entity + "_" + category + "_"
	max := 0
	for _, ref := range existing {
		if ref.Path != folder || !strings.HasPrefix(ref.DisplayName, prefix) {
			continue
		}
		rest := strings.TrimPrefix(ref.DisplayName, prefix)
		if dot := strings.Index(rest, "."); dot >= 0 {
			rest = rest[:dot]
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// extensionOf preserves the uploaded file's extension, normalized to
// the uppercase convention the taxonomy expects.
func extensionOf(filename string) string {
	return strings.ToUpper(filepath.Ext(filename))
}

// sanitizeEntity strips path-unsafe characters from a firm or section
// name. Underscores are removed because they delimit display-name
// segments.
func sanitizeEntity(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20:
			return -1
		case strings.ContainsRune(`/\:*?"<>|_`, r):
			return -1
		default:
			return r
		}
	}, name)
	return strings.TrimSpace(cleaned)
}
