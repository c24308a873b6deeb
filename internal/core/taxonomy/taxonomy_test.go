package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalFoldersEmitsActiveDisciplinesInOrder(t *testing.T) {
	tx := New(DefaultCatalog())

	folders := tx.CanonicalFolders([]string{"Electrical", "Architecture"}, nil)

	var consultants []string
	for _, f := range folders {
		if strings.HasPrefix(f, "Consultants/") {
			consultants = append(consultants, f)
		}
	}
	assert.Equal(t, []string{"Consultants/Electrical", "Consultants/Architecture"}, consultants)
}

func TestCanonicalFoldersFallsBackToFullCatalog(t *testing.T) {
	catalog := Catalog{Disciplines: []string{"Structural", "Civil"}, Trades: []string{"Concrete"}}
	tx := New(catalog)

	folders := tx.CanonicalFolders(nil, nil)

	assert.Contains(t, folders, "Scheme/Structural")
	assert.Contains(t, folders, "Detail/Civil")
	assert.Contains(t, folders, "Consultants/Structural")
	assert.Contains(t, folders, "Contractors/Concrete")
}

func TestCanonicalFoldersParentsPrecedeChildrenWithoutDuplicates(t *testing.T) {
	tx := New(DefaultCatalog())

	folders := tx.CanonicalFolders([]string{"Architecture"}, []string{"Concrete"})

	seen := make(map[string]int)
	for i, f := range folders {
		_, dup := seen[f]
		require.Falsef(t, dup, "duplicate folder %q", f)
		seen[f] = i
	}
	for _, f := range folders {
		if idx := strings.LastIndex(f, "/"); idx > 0 {
			parent := f[:idx]
			parentPos, ok := seen[parent]
			require.Truef(t, ok, "missing parent of %q", f)
			assert.Less(t, parentPos, seen[f])
		}
	}
}

func TestCanonicalFoldersIncludesFixedLeaves(t *testing.T) {
	tx := New(DefaultCatalog())

	folders := tx.CanonicalFolders(nil, nil)

	assert.Contains(t, folders, "Plan/Misc")
	assert.Contains(t, folders, "Finance/Invoices")
	assert.Contains(t, folders, "Procure/Tender Packages")
	assert.Contains(t, folders, "Delivery/RFIs")
}

func TestCanonicalFoldersTierOrder(t *testing.T) {
	tx := New(DefaultCatalog())

	folders := tx.CanonicalFolders(nil, nil)

	require.NotEmpty(t, folders)
	assert.Equal(t, "Plan", folders[0])

	last := -1
	for _, f := range folders {
		rank := tierRank(f)
		require.GreaterOrEqual(t, rank, last)
		last = rank
	}
}

func TestSortFoldersGroupsByTierThenLexicographic(t *testing.T) {
	tx := New(DefaultCatalog())

	sorted := tx.SortFolders([]string{
		"Finance/Invoices",
		"Consultants/Structural",
		"Consultants/Architecture",
		"Plan/Misc",
		"Unfiled/Odds",
	})

	assert.Equal(t, []string{
		"Plan/Misc",
		"Consultants/Architecture",
		"Consultants/Structural",
		"Finance/Invoices",
		"Unfiled/Odds",
	}, sorted)
}

func TestSortFoldersDoesNotMutateInput(t *testing.T) {
	tx := New(DefaultCatalog())
	in := []string{"Finance", "Plan"}

	_ = tx.SortFolders(in)

	assert.Equal(t, []string{"Finance", "Plan"}, in)
}
