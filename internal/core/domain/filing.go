package domain

// UploadLocation discriminates the filing-context variants. The
// discipline/trade field is required for the card locations and
// ignored elsewhere.
type UploadLocation string

const (
	LocationGeneral        UploadLocation = "general"
	LocationConsultantCard UploadLocation = "consultant_card"
	LocationContractorCard UploadLocation = "contractor_card"
	LocationPlanCard       UploadLocation = "plan_card"
)

func (l UploadLocation) Valid() bool {
	switch l {
	case LocationGeneral, LocationConsultantCard, LocationContractorCard, LocationPlanCard:
		return true
	}
	return false
}

// RequiresDiscipline reports whether DisciplineOrTrade must be set for
// this location.
func (l UploadLocation) RequiresDiscipline() bool {
	return l == LocationConsultantCard || l == LocationContractorCard
}

// FilingContext describes where an upload originated and carries the
// metadata the resolver needs to place it. Invoice is an explicit
// discriminant on the general location rather than being inferred from
// FirmName presence.
type FilingContext struct {
	Location          UploadLocation `json:"location"`
	DisciplineOrTrade string         `json:"discipline_or_trade,omitempty"`
	FirmName          string         `json:"firm_name,omitempty"`
	SectionName       string         `json:"section_name,omitempty"`
	Invoice           bool           `json:"invoice,omitempty"`
	AddToDocuments    bool           `json:"add_to_documents"`
}

// FilingOverride carries caller-supplied values that bypass
// classification. Either field may be empty, in which case the
// resolver computes it normally.
type FilingOverride struct {
	Path        string `json:"path,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

func (o FilingOverride) Empty() bool {
	return o.Path == "" && o.DisplayName == ""
}

// ResolvedFiling is the resolver's output: the destination folder, a
// display name unique among live documents in that folder, and the
// originating context retained for audit.
type ResolvedFiling struct {
	FolderPath         string        `json:"folder_path"`
	DisplayName        string        `json:"display_name"`
	ManuallyOverridden bool          `json:"manually_overridden"`
	Context            FilingContext `json:"context"`
}

// ClassificationHint is the content-derived category produced by the
// external extraction pipeline for documents uploaded without an
// explicit filing context.
type ClassificationHint struct {
	Category          string  `json:"category"`
	Confidence        float64 `json:"confidence"`
	FirmName          string  `json:"firm_name,omitempty"`
	DisciplineOrTrade string  `json:"discipline_or_trade,omitempty"`
	SectionName       string  `json:"section_name,omitempty"`
}

// Hint categories understood by the classifier. Anything else falls
// back to the general location.
const (
	HintCategoryInvoice              = "invoice"
	HintCategoryConsultantSubmission = "consultant_submission"
	HintCategoryContractorSubmission = "contractor_submission"
	HintCategoryPlan                 = "plan"
	HintCategoryGeneral              = "general"
)
