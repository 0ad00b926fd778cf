package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellabath/storefront-api/internal/models"
)

// fakeCaller routes Call to a per-model/method function.
type fakeCaller struct {
	handle func(model, method string, args []any) (any, error)
}

func (f *fakeCaller) Call(_ context.Context, model, method string, args []any, _ map[string]any) (json.RawMessage, error) {
	result, err := f.handle(model, method, args)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// countDomainID digs the category id out of a search_count domain like
// [["public_categ_ids", "in", [id]], ["is_published", "=", true]].
func countDomainID(t *testing.T, args []any) int64 {
	t.Helper()
	domain, ok := args[0].([]any)
	require.True(t, ok)
	cond, ok := domain[0].([]any)
	require.True(t, ok)
	switch v := cond[2].(type) {
	case []int64:
		return v[0]
	case int64:
		return v
	default:
		t.Fatalf("unexpected count domain value %#v", cond[2])
		return 0
	}
}

func cat(id int64, count int, childIDs ...int64) models.Category {
	return models.Category{ID: id, Count: count, ChildIDs: childIDs}
}

func TestRollUpTotals(t *testing.T) {
	// Parent 5 owns 2 published products, child 6 owns 3, child 7 none.
	cats := []models.Category{
		cat(5, 2, 6, 7),
		cat(6, 3),
		cat(7, 0),
	}

	RollUpTotals(cats)

	assert.Equal(t, 5, cats[0].TotalCount)
	assert.Equal(t, 3, cats[1].TotalCount)
	assert.Equal(t, 0, cats[2].TotalCount)
}

func TestRollUpTotalsDeepHierarchy(t *testing.T) {
	cats := []models.Category{
		cat(1, 1, 2),
		cat(2, 2, 3),
		cat(3, 4),
	}

	RollUpTotals(cats)

	assert.Equal(t, 7, cats[0].TotalCount)
	assert.Equal(t, 6, cats[1].TotalCount)
}

func TestRollUpTotalsCycleTerminates(t *testing.T) {
	// Odoo should never hand back a cyclic graph, but if it does each
	// member must count once instead of recursing forever.
	cats := []models.Category{
		cat(1, 1, 2),
		cat(2, 2, 1),
	}

	RollUpTotals(cats)

	assert.Equal(t, 3, cats[0].TotalCount)
	assert.Equal(t, 3, cats[1].TotalCount)
}

func TestRollUpTotalsUnknownChildIgnored(t *testing.T) {
	cats := []models.Category{cat(1, 2, 999)}
	RollUpTotals(cats)
	assert.Equal(t, 2, cats[0].TotalCount)
}

func TestFetchPublic(t *testing.T) {
	counts := map[int64]int{5: 2, 6: 3, 7: 0, 8: 0}

	rpc := &fakeCaller{handle: func(model, method string, args []any) (any, error) {
		switch {
		case model == "product.public.category" && method == "search_read":
			return []map[string]any{
				// Sequence deliberately out of order; 8 has an empty subtree
				{"id": 6, "name": "Showers", "parent_id": []any{5, "Bathware"}, "child_id": false, "sequence": 20},
				{"id": 5, "name": "Bathware", "parent_id": false, "child_id": []any{6, 7}, "sequence": 10},
				{"id": 7, "name": "Spares", "parent_id": []any{5, "Bathware"}, "child_id": false, "sequence": 30},
				{"id": 8, "name": "Legacy", "parent_id": false, "child_id": false, "sequence": 5},
			}, nil
		case model == "product.template" && method == "search_count":
			return counts[countDomainID(t, args)], nil
		}
		t.Fatalf("unexpected call %s.%s", model, method)
		return nil, nil
	}}

	agg := &Aggregator{RPC: rpc}
	cats, err := agg.FetchPublic(context.Background())
	require.NoError(t, err)

	// 7 and 8 both have empty subtrees and drop out; the rest come back
	// in sequence order with counts rolled up.
	require.Len(t, cats, 2)
	assert.Equal(t, int64(5), cats[0].ID)
	assert.Equal(t, 5, cats[0].TotalCount)
	assert.Equal(t, int64(6), cats[1].ID)
	assert.Equal(t, 3, cats[1].TotalCount)

	require.NotNil(t, cats[1].ParentID)
	assert.Equal(t, int64(5), *cats[1].ParentID)
	assert.Equal(t, "Bathware", cats[1].ParentName)
	assert.Equal(t, "showers", cats[1].Slug)
}

func TestBuildTree(t *testing.T) {
	five := int64(5)
	cats := []models.Category{
		{ID: 5, Name: "Bathware"},
		{ID: 6, Name: "Showers", ParentID: &five},
		{ID: 7, Name: "Tubs", ParentID: &five},
		{ID: 9, Name: "Accessories"},
	}

	tree := BuildTree(cats)

	require.Len(t, tree, 2)
	assert.Equal(t, int64(5), tree[0].ID)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, int64(6), tree[0].Children[0].ID)
	assert.Equal(t, int64(7), tree[0].Children[1].ID)
	assert.Empty(t, tree[1].Children)
}
