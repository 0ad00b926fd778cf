package catalog

import (
	"context"
	"sort"

	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"

	"github.com/bellabath/storefront-api/internal/models"
	"github.com/bellabath/storefront-api/internal/odoo"
)

// Category images default to a stock photo until the admin uploads an
// override through the site config.
const defaultCategoryImage = "https://images.unsplash.com/photo-1552321554-5fefe8c9ef14?w=600&h=400&fit=crop"

// Aggregator reconstructs the category hierarchy from Odoo's flat records:
// per-category published-product counts, parent/child links, and the
// recursive totalCount roll-up.
type Aggregator struct {
	RPC odoo.Caller
}

// FetchInternal fetches the internal inventory categories
// (product.category) with their own published-product counts. Categories
// without any directly attached products are dropped.
func (a *Aggregator) FetchInternal(ctx context.Context) ([]models.Category, error) {
	records, err := odoo.SearchRead[odoo.CategoryRecord](ctx, a.RPC, "product.category", []any{}, map[string]any{
		"fields": []string{"id", "name", "parent_id", "child_id", "complete_name"},
	})
	if err != nil {
		return nil, err
	}

	cats, err := a.withCounts(ctx, records, func(id int64) []any {
		return []any{
			[]any{"categ_id", "=", id},
			[]any{"is_published", "=", true},
		}
	})
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		if c.Count > 0 {
			c.Image = defaultCategoryImage
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// FetchPublic fetches the website categories (product.public.category),
// rolls counts up through the hierarchy, drops categories whose whole
// subtree is empty, and sorts by the Odoo sequence number.
func (a *Aggregator) FetchPublic(ctx context.Context) ([]models.Category, error) {
	records, err := odoo.SearchRead[odoo.CategoryRecord](ctx, a.RPC, "product.public.category", []any{}, map[string]any{
		"fields": []string{"id", "name", "parent_id", "child_id", "sequence"},
		"order":  "sequence asc, name asc",
	})
	if err != nil {
		return nil, err
	}

	cats, err := a.withCounts(ctx, records, func(id int64) []any {
		return []any{
			[]any{"public_categ_ids", "in", []int64{id}},
			[]any{"is_published", "=", true},
		}
	})
	if err != nil {
		return nil, err
	}

	RollUpTotals(cats)

	filtered := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		if c.TotalCount > 0 {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Sequence < filtered[j].Sequence
	})
	return filtered, nil
}

// withCounts maps raw records to categories and fires one search_count per
// category, fanned out concurrently (the Odoo side handles these as cheap
// indexed counts). Any single failure aborts the whole fetch; there is no
// partial category list.
func (a *Aggregator) withCounts(ctx context.Context, records []odoo.CategoryRecord, domain func(id int64) []any) ([]models.Category, error) {
	cats := make([]models.Category, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, rec := range records {
		cats[i] = models.Category{
			ID:       rec.ID,
			Name:     rec.Name,
			FullName: rec.CompleteName.String(),
			Slug:     slug.Make(rec.Name),
			ChildIDs: ids(rec.ChildIDs),
			Sequence: rec.Sequence,
		}
		if rec.ParentID.Valid {
			parentID := rec.ParentID.ID
			cats[i].ParentID = &parentID
			cats[i].ParentName = rec.ParentID.Name
		}

		id := rec.ID
		idx := i
		g.Go(func() error {
			count, err := odoo.SearchCount(gctx, a.RPC, "product.template", domain(id))
			if err != nil {
				return err
			}
			cats[idx].Count = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cats, nil
}

// RollUpTotals fills TotalCount for every category: its own count plus the
// recursive sum over all descendants. A visited set guards against cyclic
// parent/child data coming back from Odoo: a cycle contributes each
// member once instead of recursing forever.
func RollUpTotals(cats []models.Category) {
	byID := make(map[int64]*models.Category, len(cats))
	for i := range cats {
		byID[cats[i].ID] = &cats[i]
	}

	var total func(id int64, visited map[int64]bool) int
	total = func(id int64, visited map[int64]bool) int {
		cat, ok := byID[id]
		if !ok || visited[id] {
			return 0
		}
		visited[id] = true
		sum := cat.Count
		for _, childID := range cat.ChildIDs {
			sum += total(childID, visited)
		}
		return sum
	}

	for i := range cats {
		cats[i].TotalCount = total(cats[i].ID, map[int64]bool{})
	}
}

// BuildTree assembles the multi-root tree from the flat aggregated list.
// Children keep the sequence order of the input slice.
func BuildTree(cats []models.Category) []models.CategoryNode {
	childrenOf := make(map[int64][]models.Category)
	var roots []models.Category
	for _, c := range cats {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}

	var build func(c models.Category, visited map[int64]bool) models.CategoryNode
	build = func(c models.Category, visited map[int64]bool) models.CategoryNode {
		visited[c.ID] = true
		node := models.CategoryNode{Category: c, Children: []models.CategoryNode{}}
		for _, child := range childrenOf[c.ID] {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, build(child, visited))
		}
		return node
	}

	tree := []models.CategoryNode{}
	visited := map[int64]bool{}
	for _, root := range roots {
		tree = append(tree, build(root, visited))
	}
	return tree
}
