package navigation_test

import (
	"testing"

	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/google/uuid"
)

var (
	pageAbout   = uuid.MustParse("00000000-0000-0000-0000-00000000a001")
	pageMenu    = uuid.MustParse("00000000-0000-0000-0000-00000000a002")
	pageDeleted = uuid.MustParse("00000000-0000-0000-0000-00000000a003")
)

func item(id string, label string, order int, linkType navigation.LinkType, target string) *navigation.Item {
	return &navigation.Item{
		ID:        uuid.MustParse(id),
		Label:     label,
		Order:     order,
		LinkType:  linkType,
		Target:    target,
		IsVisible: true,
	}
}

func keys(nodes []navigation.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Label)
	}
	return out
}

func assertLabels(t *testing.T, nodes []navigation.Node, want ...string) {
	t.Helper()
	got := keys(nodes)
	if len(got) != len(want) {
		t.Fatalf("expected labels %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected labels %v, got %v", want, got)
		}
	}
}

func TestBuildEmptyScopeWithProductsInjectsSyntheticItem(t *testing.T) {
	nodes := navigation.Build(nil, navigation.Options{HasProducts: true})

	if len(nodes) != 1 {
		t.Fatalf("expected one node, got %d", len(nodes))
	}
	node := nodes[0]
	if node.Key != navigation.AutoProductsKey || !node.Synthetic {
		t.Fatalf("expected synthetic products node, got %+v", node)
	}
	if node.Order != navigation.DefaultProductsOrder || node.Label != "Products" {
		t.Fatalf("unexpected synthetic defaults: %+v", node)
	}
	if node.Href != "/products" {
		t.Fatalf("expected /products href, got %q", node.Href)
	}
}

func TestBuildSyntheticItemsSortAfterManualItems(t *testing.T) {
	items := []*navigation.Item{
		item("00000000-0000-0000-0000-000000000001", "About", 1, navigation.LinkPage, pageAbout.String()),
	}
	nodes := navigation.Build(items, navigation.Options{
		HasProducts: true,
		HasServices: true,
		PageSlugs:   map[uuid.UUID]string{pageAbout: "about"},
	})
	assertLabels(t, nodes, "About", "Products", "Services")
}

func TestBuildVisibleManualItemSuppressesSynthetic(t *testing.T) {
	items := []*navigation.Item{
		item("00000000-0000-0000-0000-000000000001", "Shop", 5, navigation.LinkProducts, ""),
	}
	nodes := navigation.Build(items, navigation.Options{HasProducts: true})
	assertLabels(t, nodes, "Shop")
	if nodes[0].Synthetic {
		t.Fatalf("expected the manual item to be kept")
	}
}

func TestBuildHiddenManualItemDoesNotSuppressSynthetic(t *testing.T) {
	hidden := item("00000000-0000-0000-0000-000000000001", "Shop", 5, navigation.LinkProducts, "")
	hidden.IsVisible = false

	nodes := navigation.Build([]*navigation.Item{hidden}, navigation.Options{HasProducts: true})
	assertLabels(t, nodes, "Products")
	if !nodes[0].Synthetic {
		t.Fatalf("expected synthetic products node")
	}
}

func TestBuildWithoutCatalogAddsNothing(t *testing.T) {
	nodes := navigation.Build(nil, navigation.Options{})
	if len(nodes) != 0 {
		t.Fatalf("expected empty navigation, got %v", keys(nodes))
	}
}

func TestBuildSortsByOrderThenID(t *testing.T) {
	items := []*navigation.Item{
		item("00000000-0000-0000-0000-000000000003", "C", 2, navigation.LinkURL, "/c"),
		item("00000000-0000-0000-0000-000000000002", "B", 1, navigation.LinkURL, "/b"),
		item("00000000-0000-0000-0000-000000000001", "A", 2, navigation.LinkURL, "/a"),
	}
	nodes := navigation.Build(items, navigation.Options{})
	assertLabels(t, nodes, "B", "A", "C")
}

func TestBuildDropsDanglingPageLinks(t *testing.T) {
	detached := item("00000000-0000-0000-0000-000000000002", "Gone", 2, navigation.LinkPage, "")
	items := []*navigation.Item{
		item("00000000-0000-0000-0000-000000000001", "About", 1, navigation.LinkPage, pageAbout.String()),
		detached,
		item("00000000-0000-0000-0000-000000000003", "Stale", 3, navigation.LinkPage, pageDeleted.String()),
	}
	nodes := navigation.Build(items, navigation.Options{
		PageSlugs: map[uuid.UUID]string{pageAbout: "about"},
	})
	assertLabels(t, nodes, "About")
	if nodes[0].Href != "/about" || nodes[0].PageSlug != "about" {
		t.Fatalf("unexpected page node: %+v", nodes[0])
	}
}

func TestBuildLiftsChildrenOfDanglingPageLinks(t *testing.T) {
	root := item("00000000-0000-0000-0000-000000000001", "Visit", 1, navigation.LinkHeader, "")
	stale := item("00000000-0000-0000-0000-000000000002", "Stale", 2, navigation.LinkPage, pageDeleted.String())
	stale.ParentID = &root.ID
	detached := item("00000000-0000-0000-0000-000000000003", "Detached", 3, navigation.LinkPage, "")
	detached.ParentID = &stale.ID
	menu := item("00000000-0000-0000-0000-000000000004", "Menu", 4, navigation.LinkPage, pageMenu.String())
	menu.ParentID = &detached.ID
	loose := item("00000000-0000-0000-0000-000000000005", "Gone", 5, navigation.LinkPage, pageDeleted.String())
	about := item("00000000-0000-0000-0000-000000000006", "About", 6, navigation.LinkPage, pageAbout.String())
	about.ParentID = &loose.ID

	nodes := navigation.Build([]*navigation.Item{root, stale, detached, menu, loose, about}, navigation.Options{
		PageSlugs: map[uuid.UUID]string{pageAbout: "about", pageMenu: "menu"},
	})
	assertLabels(t, nodes, "Visit", "Menu", "About")
	if nodes[1].ParentKey != root.ID.String() {
		t.Fatalf("expected menu lifted under the nearest kept ancestor, got parent %q", nodes[1].ParentKey)
	}
	if nodes[2].ParentKey != "" {
		t.Fatalf("expected about lifted to the top level, got parent %q", nodes[2].ParentKey)
	}

	tree := navigation.Tree(nodes)
	if len(tree) != 2 || tree[0].Label != "Visit" || tree[1].Label != "About" {
		t.Fatalf("unexpected top level: %+v", tree)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Label != "Menu" {
		t.Fatalf("expected menu nested under visit, got %+v", tree[0].Children)
	}
}

func TestBuildHiddenParentHidesDescendants(t *testing.T) {
	parent := item("00000000-0000-0000-0000-000000000001", "Parent", 1, navigation.LinkHeader, "")
	parent.IsVisible = false
	child := item("00000000-0000-0000-0000-000000000002", "Child", 2, navigation.LinkURL, "/child")
	child.ParentID = &parent.ID
	grandchild := item("00000000-0000-0000-0000-000000000003", "Grandchild", 3, navigation.LinkURL, "/gc")
	grandchild.ParentID = &child.ID
	sibling := item("00000000-0000-0000-0000-000000000004", "Sibling", 4, navigation.LinkURL, "/s")

	nodes := navigation.Build([]*navigation.Item{parent, child, grandchild, sibling}, navigation.Options{})
	assertLabels(t, nodes, "Sibling")
}

func TestBuildUsesBasePathAndCustomLabels(t *testing.T) {
	nodes := navigation.Build(nil, navigation.Options{
		HasServices:   true,
		BasePath:      "/r/42",
		ServicesLabel: "What we do",
		ServicesOrder: 3,
	})
	if len(nodes) != 1 {
		t.Fatalf("expected one node, got %d", len(nodes))
	}
	if nodes[0].Href != "/r/42/services" || nodes[0].Label != "What we do" || nodes[0].Order != 3 {
		t.Fatalf("unexpected services node: %+v", nodes[0])
	}
}

func TestMarkActiveMatchesPageSlugAndBuiltin(t *testing.T) {
	items := []*navigation.Item{
		item("00000000-0000-0000-0000-000000000001", "About", 1, navigation.LinkPage, pageAbout.String()),
		item("00000000-0000-0000-0000-000000000002", "About again", 2, navigation.LinkPage, pageAbout.String()),
		item("00000000-0000-0000-0000-000000000003", "Menu", 3, navigation.LinkPage, pageMenu.String()),
	}
	nodes := navigation.Build(items, navigation.Options{
		HasProducts: true,
		PageSlugs:   map[uuid.UUID]string{pageAbout: "about", pageMenu: "menu"},
	})

	marked := navigation.MarkActive(nodes, navigation.View{PageSlug: "about"})
	active := 0
	for _, node := range marked {
		if node.Active {
			active++
			if node.PageSlug != "about" {
				t.Fatalf("unexpected active node: %+v", node)
			}
		}
	}
	if active != 2 {
		t.Fatalf("expected both duplicates active, got %d", active)
	}
	if nodes[0].Active {
		t.Fatalf("expected input nodes untouched")
	}

	marked = navigation.MarkActive(nodes, navigation.View{Builtin: "products"})
	for _, node := range marked {
		if node.Active != (node.Key == navigation.AutoProductsKey) {
			t.Fatalf("unexpected active state for %q: %v", node.Key, node.Active)
		}
	}
}

func TestTreeNestsToArbitraryDepth(t *testing.T) {
	root := item("00000000-0000-0000-0000-000000000001", "Root", 1, navigation.LinkHeader, "")
	mid := item("00000000-0000-0000-0000-000000000002", "Mid", 2, navigation.LinkHeader, "")
	mid.ParentID = &root.ID
	leaf := item("00000000-0000-0000-0000-000000000003", "Leaf", 3, navigation.LinkURL, "/leaf")
	leaf.ParentID = &mid.ID

	nodes := navigation.MarkActive(navigation.Build([]*navigation.Item{leaf, mid, root}, navigation.Options{}), navigation.View{})
	tree := navigation.Tree(nodes)
	if len(tree) != 1 || tree[0].Label != "Root" {
		t.Fatalf("expected single root, got %+v", tree)
	}
	if len(tree[0].Children) != 1 || len(tree[0].Children[0].Children) != 1 {
		t.Fatalf("expected three levels, got %+v", tree[0])
	}
	if tree[0].Children[0].Children[0].Label != "Leaf" {
		t.Fatalf("unexpected leaf: %+v", tree[0].Children[0].Children[0])
	}
}

func TestTreePromotesOrphansAndCutsCycles(t *testing.T) {
	missing := uuid.MustParse("00000000-0000-0000-0000-0000000000ff")
	orphan := item("00000000-0000-0000-0000-000000000001", "Orphan", 1, navigation.LinkURL, "/o")
	orphan.ParentID = &missing

	a := item("00000000-0000-0000-0000-000000000002", "A", 2, navigation.LinkHeader, "")
	b := item("00000000-0000-0000-0000-000000000003", "B", 3, navigation.LinkHeader, "")
	a.ParentID = &b.ID
	b.ParentID = &a.ID

	tree := navigation.Tree(navigation.Build([]*navigation.Item{orphan, a, b}, navigation.Options{}))

	seen := map[string]int{}
	var walk func(nodes []navigation.TreeNode)
	walk = func(nodes []navigation.TreeNode) {
		for _, node := range nodes {
			seen[node.Label]++
			walk(node.Children)
		}
	}
	walk(tree)

	for _, label := range []string{"Orphan", "A", "B"} {
		if seen[label] != 1 {
			t.Fatalf("expected %q exactly once, got %d (%v)", label, seen[label], seen)
		}
	}
	if tree[0].Label != "Orphan" {
		t.Fatalf("expected orphan promoted to top level, got %q", tree[0].Label)
	}
}

func TestTreeActiveTrail(t *testing.T) {
	parent := item("00000000-0000-0000-0000-000000000001", "Visit", 1, navigation.LinkHeader, "")
	child := item("00000000-0000-0000-0000-000000000002", "About", 2, navigation.LinkPage, pageAbout.String())
	child.ParentID = &parent.ID

	nodes := navigation.Build([]*navigation.Item{parent, child}, navigation.Options{
		PageSlugs: map[uuid.UUID]string{pageAbout: "about"},
	})
	tree := navigation.Tree(navigation.MarkActive(nodes, navigation.View{PageSlug: "about"}))
	if len(tree) != 1 || !tree[0].ActiveTrail || tree[0].Active {
		t.Fatalf("expected parent on active trail only, got %+v", tree)
	}
	if !tree[0].Children[0].Active {
		t.Fatalf("expected child active")
	}
}

func TestParseKey(t *testing.T) {
	if _, err := navigation.ParseKey(navigation.AutoServicesKey); err == nil {
		t.Fatalf("expected synthetic key rejected")
	}
	if _, err := navigation.ParseKey("nope"); err == nil {
		t.Fatalf("expected invalid key rejected")
	}
	id, err := navigation.ParseKey(pageAbout.String())
	if err != nil || id != pageAbout {
		t.Fatalf("expected parsed id, got %s %v", id, err)
	}
}
