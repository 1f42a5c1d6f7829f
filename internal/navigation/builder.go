package navigation

import (
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/google/uuid"
)

// Keys and default placement of the synthetic catalog items.
const (
	AutoProductsKey = "auto-products"
	AutoServicesKey = "auto-services"

	DefaultProductsOrder = 9998
	DefaultServicesOrder = 9999

	DefaultProductsLabel = "Products"
	DefaultServicesLabel = "Services"
)

// Options carries the read-time facts the builder needs.
type Options struct {
	HasProducts bool
	HasServices bool
	// PageSlugs maps every resolvable page id in scope to its slug. Page
	// links whose target is missing here are dropped.
	PageSlugs map[uuid.UUID]string
	// BasePath prefixes generated hrefs, e.g. "/r/42".
	BasePath string

	ProductsLabel string
	ServicesLabel string
	ProductsOrder int
	ServicesOrder int

	Logger interfaces.Logger
}

// Node is one flat navigation entry after building.
type Node struct {
	Key       string    `json:"key"`
	ParentKey string    `json:"parent_key,omitempty"`
	Label     string    `json:"label"`
	Order     int       `json:"order"`
	LinkType  LinkType  `json:"link_type"`
	Href      string    `json:"href,omitempty"`
	PageID    uuid.UUID `json:"page_id,omitempty"`
	PageSlug  string    `json:"page_slug,omitempty"`
	Synthetic bool      `json:"synthetic,omitempty"`
	Active    bool      `json:"active,omitempty"`
}

// SyntheticKey reports whether key names a generated item.
func SyntheticKey(key string) bool {
	return key == AutoProductsKey || key == AutoServicesKey
}

// Build produces the flat, ordered navigation for one scope:
// visible items only, synthetic Products/Services when the catalog has
// entries and no visible manual item of that type exists, sorted by order
// then key, and with dangling page links removed. Children of a removed
// dangling link move up to its nearest kept ancestor, the same way Delete
// reparents them.
func Build(items []*Item, opts Options) []Node {
	logger := logging.Ensure(opts.Logger)
	visible := visibleItems(items)

	nodes := make([]Node, 0, len(visible)+2)
	dropped := map[string]string{}
	var hasProductsLink, hasServicesLink bool
	for _, item := range visible {
		switch item.LinkType {
		case LinkProducts:
			hasProductsLink = true
		case LinkServices:
			hasServicesLink = true
		}

		node, ok := nodeFromItem(item, opts)
		if !ok {
			logging.WithFields(logger, map[string]any{
				"item_id": item.ID,
				"target":  item.Target,
			}).Debug("navigation.build.dangling_target")
			parentKey := ""
			if item.ParentID != nil {
				parentKey = item.ParentID.String()
			}
			dropped[item.ID.String()] = parentKey
			continue
		}
		nodes = append(nodes, node)
	}
	liftOverDropped(nodes, dropped)

	if opts.HasProducts && !hasProductsLink {
		nodes = append(nodes, syntheticNode(AutoProductsKey, LinkProducts, firstNonEmpty(opts.ProductsLabel, DefaultProductsLabel), orderOrDefault(opts.ProductsOrder, DefaultProductsOrder), opts.BasePath))
	}
	if opts.HasServices && !hasServicesLink {
		nodes = append(nodes, syntheticNode(AutoServicesKey, LinkServices, firstNonEmpty(opts.ServicesLabel, DefaultServicesLabel), orderOrDefault(opts.ServicesOrder, DefaultServicesOrder), opts.BasePath))
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Order != nodes[j].Order {
			return nodes[i].Order < nodes[j].Order
		}
		return nodes[i].Key < nodes[j].Key
	})
	return nodes
}

// liftOverDropped points nodes whose parent was dropped at the first
// ancestor that survived, or at the top level.
func liftOverDropped(nodes []Node, dropped map[string]string) {
	if len(dropped) == 0 {
		return
	}
	for i := range nodes {
		parent := nodes[i].ParentKey
		for hops := 0; hops <= len(dropped); hops++ {
			next, ok := dropped[parent]
			if !ok {
				break
			}
			parent = next
		}
		if _, ok := dropped[parent]; ok {
			parent = ""
		}
		nodes[i].ParentKey = parent
	}
}

// visibleItems keeps items whose own flag and every ancestor's flag are set.
func visibleItems(items []*Item) []*Item {
	byID := make(map[uuid.UUID]*Item, len(items))
	for _, item := range items {
		if item != nil {
			byID[item.ID] = item
		}
	}

	hidden := make(map[uuid.UUID]bool, len(items))
	var isHidden func(item *Item, depth int) bool
	isHidden = func(item *Item, depth int) bool {
		if state, ok := hidden[item.ID]; ok {
			return state
		}
		if !item.IsVisible {
			hidden[item.ID] = true
			return true
		}
		result := false
		if item.ParentID != nil && depth < len(byID) {
			if parent, ok := byID[*item.ParentID]; ok && parent.ID != item.ID {
				result = isHidden(parent, depth+1)
			}
		}
		hidden[item.ID] = result
		return result
	}

	out := make([]*Item, 0, len(items))
	for _, item := range items {
		if item != nil && !isHidden(item, 0) {
			out = append(out, item)
		}
	}
	return out
}

func nodeFromItem(item *Item, opts Options) (Node, bool) {
	node := Node{
		Key:      item.ID.String(),
		Label:    item.Label,
		Order:    item.Order,
		LinkType: item.LinkType,
	}
	if item.ParentID != nil {
		node.ParentKey = item.ParentID.String()
	}

	switch item.LinkType {
	case LinkPage:
		pageID := item.PageID()
		slug, ok := opts.PageSlugs[pageID]
		if pageID == uuid.Nil || !ok {
			return Node{}, false
		}
		node.PageID = pageID
		node.PageSlug = slug
		node.Href = joinHref(opts.BasePath, slug)
	case LinkURL:
		node.Href = strings.TrimSpace(item.Target)
	case LinkProducts:
		node.Href = joinHref(opts.BasePath, "products")
	case LinkServices:
		node.Href = joinHref(opts.BasePath, "services")
	case LinkHeader:
	default:
		return Node{}, false
	}
	return node, true
}

func syntheticNode(key string, linkType LinkType, label string, order int, basePath string) Node {
	return Node{
		Key:       key,
		Label:     label,
		Order:     order,
		LinkType:  linkType,
		Href:      joinHref(basePath, string(linkType)),
		Synthetic: true,
	}
}

// View describes what the visitor is currently looking at.
type View struct {
	PageSlug string
	Builtin  string
}

// MarkActive flags page links whose slug matches the viewed page and
// catalog links matching the built-in view. Every duplicate is flagged.
func MarkActive(nodes []Node, view View) []Node {
	out := make([]Node, len(nodes))
	for i, node := range nodes {
		node.Active = false
		switch node.LinkType {
		case LinkPage:
			node.Active = view.PageSlug != "" && node.PageSlug == view.PageSlug
		case LinkProducts, LinkServices:
			node.Active = view.Builtin != "" && string(node.LinkType) == view.Builtin
		}
		out[i] = node
	}
	return out
}

// TreeNode is a Node with its children attached.
type TreeNode struct {
	Node
	Children []TreeNode `json:"children,omitempty"`
	// ActiveTrail is set when the node or any descendant is active.
	ActiveTrail bool `json:"active_trail,omitempty"`
}

// Tree nests flat nodes by parent key to arbitrary depth. Nodes whose parent
// is absent from nodes are promoted to the top level; nodes caught in a parent cycle are
// promoted once and the cycle is cut.
func Tree(nodes []Node) []TreeNode {
	present := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		present[node.Key] = struct{}{}
	}

	children := make(map[string][]Node, len(nodes))
	var roots []Node
	for _, node := range nodes {
		if _, ok := present[node.ParentKey]; node.ParentKey == "" || !ok || node.ParentKey == node.Key {
			roots = append(roots, node)
			continue
		}
		children[node.ParentKey] = append(children[node.ParentKey], node)
	}

	visited := make(map[string]bool, len(nodes))
	var build func(node Node) TreeNode
	build = func(node Node) TreeNode {
		visited[node.Key] = true
		tree := TreeNode{Node: node, ActiveTrail: node.Active}
		for _, child := range children[node.Key] {
			if visited[child.Key] {
				continue
			}
			sub := build(child)
			if sub.ActiveTrail {
				tree.ActiveTrail = true
			}
			tree.Children = append(tree.Children, sub)
		}
		return tree
	}

	out := make([]TreeNode, 0, len(roots))
	for _, root := range roots {
		out = append(out, build(root))
	}
	for _, node := range nodes {
		if !visited[node.Key] {
			out = append(out, build(node))
		}
	}
	return out
}

func joinHref(base, segment string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "/"
	}
	return path.Join(base, segment)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func orderOrDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
