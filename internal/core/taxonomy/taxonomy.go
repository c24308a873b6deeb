// Package taxonomy defines the fixed project folder structure and
// derives the canonical folder list for a project from its active
// discipline and trade sets.
package taxonomy

import (
	"sort"
	"strings"
)

// Top-level tiers in display order. The list is fixed and not
// user-editable; only the discipline/trade subfolders vary by project.
const (
	TierPlan        = "Plan"
	TierScheme      = "Scheme"
	TierDetail      = "Detail"
	TierProcure     = "Procure"
	TierDelivery    = "Delivery"
	TierConsultants = "Consultants"
	TierContractors = "Contractors"
	TierAdmin       = "Admin"
	TierFinance     = "Finance"
)

var tierOrder = []string{
	TierPlan,
	TierScheme,
	TierDetail,
	TierProcure,
	TierDelivery,
	TierConsultants,
	TierContractors,
	TierAdmin,
	TierFinance,
}

// Fixed leaves per tier. Plan/Misc and Finance/Invoices are load
// bearing: the filing resolver targets them directly.
var fixedLeaves = map[string][]string{
	TierPlan:     {"Briefs", "Surveys", "Reports", "Misc"},
	TierProcure:  {"Tender Packages", "Tender Returns", "Evaluations", "Contracts"},
	TierDelivery: {"Programme", "Site Instructions", "RFIs", "Progress Reports"},
	TierAdmin:    {"Meeting Minutes", "Correspondence", "Insurances"},
	TierFinance:  {"Invoices", "Budgets", "Payment Claims"},
}

// Tiers whose subfolders come from the consultant discipline set.
var disciplineTiers = map[string]bool{
	TierScheme:      true,
	TierDetail:      true,
	TierConsultants: true,
}

// Catalog holds the full discipline and trade lists, in declaration
// order. Projects narrow these via their active sets; an empty active
// set falls back to the whole catalog.
type Catalog struct {
	Disciplines []string `yaml:"disciplines"`
	Trades      []string `yaml:"trades"`
}

// DefaultCatalog returns the bundled discipline/trade catalog used
// when no catalog file is configured.
func DefaultCatalog() Catalog {
	return Catalog{
		Disciplines: []string{
			"Architecture",
			"Structural",
			"Civil",
			"Electrical",
			"Mechanical",
			"Hydraulic",
			"Fire",
			"Landscape",
			"Planning",
		},
		Trades: []string{
			"Demolition",
			"Earthworks",
			"Concrete",
			"Steelwork",
			"Carpentry",
			"Roofing",
			"Electrical",
			"Plumbing",
			"Painting",
		},
	}
}

// Taxonomy produces canonical folder lists for a given catalog. It is
// immutable after construction and safe for concurrent use.
type Taxonomy struct {
	catalog Catalog
}

func New(catalog Catalog) *Taxonomy {
	return &Taxonomy{catalog: catalog}
}

// CanonicalFolders emits every valid folder path for a project, parents
// before children, each exactly once, in taxonomy order. Non-empty
// activeDisciplines replaces the discipline catalog for the
// Scheme/Detail/Consultants tiers, preserving the given order; same
// for activeTrades under Contractors.
func (t *Taxonomy) CanonicalFolders(activeDisciplines, activeTrades []string) []string {
	disciplines := t.catalog.Disciplines
	if len(activeDisciplines) > 0 {
		disciplines = activeDisciplines
	}
	trades := t.catalog.Trades
	if len(activeTrades) > 0 {
		trades = activeTrades
	}

	folders := make([]string, 0, len(tierOrder)*(len(disciplines)+1))
	seen := make(map[string]bool)
	emit := func(path string) {
		if !seen[path] {
			seen[path] = true
			folders = append(folders, path)
		}
	}

	for _, tier := range tierOrder {
		emit(tier)

		var leaves []string
		switch {
		case disciplineTiers[tier]:
			leaves = disciplines
		case tier == TierContractors:
			leaves = trades
		default:
			leaves = fixedLeaves[tier]
		}
		for _, leaf := range leaves {
			emit(tier + "/" + leaf)
		}
	}
	return folders
}

// SortFolders reorders an arbitrary folder list into taxonomy order:
// grouped by tier position first, then lexicographically within a
// tier. Paths under unrecognized tiers sort after all known tiers.
func (t *Taxonomy) SortFolders(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := tierRank(out[i]), tierRank(out[j])
		if ti != tj {
			return ti < tj
		}
		return out[i] < out[j]
	})
	return out
}

func tierRank(path string) int {
	tier := path
	if idx := strings.Index(path, "/"); idx >= 0 {
		tier = path[:idx]
	}
	for i, name := range tierOrder {
		if name == tier {
			return i
		}
	}
	return len(tierOrder)
}
