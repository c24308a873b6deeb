package foldertree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

func findNode(root *Node, path string) *Node {
	if root.Path == path {
		return root
	}
	for _, child := range root.Children {
		if n := findNode(child, path); n != nil {
			return n
		}
	}
	return nil
}

func TestBuildCountsExactPathMatchesOnly(t *testing.T) {
	root := Build(
		[]string{"Plan", "Plan/Misc"},
		[]domain.DocumentRef{
			{Path: "Plan/Misc", DisplayName: "a"},
			{Path: "Plan/Misc", DisplayName: "b"},
		},
	)

	misc := findNode(root, "Plan/Misc")
	require.NotNil(t, misc)
	assert.Equal(t, 2, misc.FileCount)

	plan := findNode(root, "Plan")
	require.NotNil(t, plan)
	assert.Equal(t, 0, plan.FileCount)
	assert.True(t, plan.IsExpandable)
}

func TestBuildPreservesCanonicalOrder(t *testing.T) {
	root := Build([]string{"Plan", "Plan/Surveys", "Plan/Misc", "Finance", "Finance/Invoices"}, nil)

	require.Len(t, root.Children, 2)
	assert.Equal(t, "Plan", root.Children[0].Name)
	assert.Equal(t, "Finance", root.Children[1].Name)

	plan := root.Children[0]
	require.Len(t, plan.Children, 2)
	assert.Equal(t, "Surveys", plan.Children[0].Name)
	assert.Equal(t, "Misc", plan.Children[1].Name)
}

func TestBuildToleratesUnclassifiedPaths(t *testing.T) {
	root := Build(
		[]string{"Plan", "Plan/Misc"},
		[]domain.DocumentRef{
			{Path: "Archive/2019", DisplayName: "old.pdf"},
		},
	)

	archive := findNode(root, "Archive/2019")
	require.NotNil(t, archive)
	assert.Equal(t, 1, archive.FileCount)
	assert.True(t, findNode(root, "Archive").IsExpandable)
}

func TestBuildSortsUnclassifiedSiblingsAfterCanonical(t *testing.T) {
	root := Build(
		[]string{"Plan", "Finance"},
		[]domain.DocumentRef{
			{Path: "Zulu", DisplayName: "z"},
			{Path: "Alpha", DisplayName: "a"},
		},
	)

	names := make([]string, 0, len(root.Children))
	for _, child := range root.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"Plan", "Finance", "Alpha", "Zulu"}, names)
}

func TestBuildNoDuplicateSiblings(t *testing.T) {
	root := Build(
		[]string{"Consultants", "Consultants/Architecture"},
		[]domain.DocumentRef{
			{Path: "Consultants/Architecture", DisplayName: "a"},
		},
	)

	consultants := findNode(root, "Consultants")
	require.NotNil(t, consultants)
	assert.Len(t, consultants.Children, 1)
}

func TestFilterEmptyKeepsOnlyOccupiedBranches(t *testing.T) {
	root := Build(
		[]string{
			"Consultants",
			"Consultants/Architecture",
			"Consultants/Electrical",
			"Contractors",
			"Contractors/Concrete",
		},
		[]domain.DocumentRef{
			{Path: "Consultants/Electrical", DisplayName: "report.pdf"},
		},
	)

	pruned := FilterEmpty(root)
	require.NotNil(t, pruned)
	require.Len(t, pruned.Children, 1)

	consultants := pruned.Children[0]
	assert.Equal(t, "Consultants", consultants.Name)
	require.Len(t, consultants.Children, 1)
	assert.Equal(t, "Electrical", consultants.Children[0].Name)

	assert.Nil(t, findNode(pruned, "Consultants/Architecture"))
	assert.Nil(t, findNode(pruned, "Contractors"))
}

func TestFilterEmptyReturnsNilForEmptyTree(t *testing.T) {
	root := Build([]string{"Plan", "Plan/Misc"}, nil)

	assert.Nil(t, FilterEmpty(root))
}

func TestFilterEmptyDoesNotMutateOriginal(t *testing.T) {
	root := Build(
		[]string{"Plan", "Plan/Misc", "Finance"},
		[]domain.DocumentRef{{Path: "Plan/Misc", DisplayName: "a"}},
	)

	_ = FilterEmpty(root)

	assert.NotNil(t, findNode(root, "Finance"))
}
