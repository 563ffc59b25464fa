package docgraph

// Ref is DocRef (§3): a cheap, copyable capability pairing a Store with
// one of its Items. It never owns anything and must not outlive the
// Store it points into. Every traversal method stays within this pair,
// reaching through Store.resolver only to follow an explicit external
// edge (Use re-export, trait-impl provenance, cross-graph link) — never
// to wander the whole working set.
type Ref struct {
	Graph *Store
	Item  *Item
}

// IsZero reports whether r was never assigned (the zero Ref).
func (r Ref) IsZero() bool { return r.Graph == nil || r.Item == nil }

// ID returns the crate-local id of r's item.
func (r Ref) ID() uint32 {
	if r.IsZero() {
		return 0
	}
	return r.Item.ID
}

// Child looks up a direct child by local id within the same graph.
func (r Ref) Child(id uint32) (Ref, bool) {
	if r.IsZero() {
		return Ref{}, false
	}
	return r.Graph.Get(id)
}

// ChildByID looks up a direct child by local id, transparently following
// Use items the same way ChildByName does, so id-path descent is
// re-export-transparent (§4.D get_item_from_id_path: "Also follows Use
// items transparently").
func (r Ref) ChildByID(id uint32) (Ref, bool) {
	child, ok := r.Child(id)
	if !ok {
		return Ref{}, false
	}
	return child.resolveUse()
}

// Children returns Refs for all direct children, in source order.
func (r Ref) Children() []Ref {
	if r.IsZero() {
		return nil
	}
	out := make([]Ref, 0, len(r.Item.Children))
	for _, id := range r.Item.Children {
		if child, ok := r.Graph.Get(id); ok {
			out = append(out, child)
		}
	}
	return out
}

// ChildByName finds a direct child matching name, transparently
// following Use (re-export) items: if the matching child is a Use item,
// the re-export's target is substituted (possibly in another graph via
// ExternalTarget) while the exposed name (the re-export's own name, not
// the target's) is what matched. This mirrors resolve_path's re-export
// rule (§4.D).
func (r Ref) ChildByName(name string) (Ref, bool) {
	if r.IsZero() {
		return Ref{}, false
	}
	for _, id := range r.Item.Children {
		child, ok := r.Graph.Get(id)
		if !ok || child.Item.Name != name {
			continue
		}
		return child.resolveUse()
	}
	return Ref{}, false
}

// resolveUse follows a chain of Use items to their ultimate target,
// returning the original Ref unchanged if it is not a Use item. Cross-
// graph targets are followed via the owning Store's resolver.
func (r Ref) resolveUse() (Ref, bool) {
	seen := map[uint32]bool{}
	cur := r
	for {
		use, ok := cur.Item.Inner.(UseInner)
		if !ok {
			return cur, true
		}
		if seen[cur.Item.ID] {
			return Ref{}, false // cyclic re-export chain
		}
		seen[cur.Item.ID] = true

		if use.ExternalTarget != nil {
			target := *use.ExternalTarget
			destGraph, ok := cur.Graph.TraverseToCrateByID(target.ExternalID)
			if !ok {
				return Ref{}, false
			}
			next, ok := destGraph.Get(target.LocalID)
			if !ok {
				return Ref{}, false
			}
			cur = next
			continue
		}

		next, ok := cur.Graph.Get(use.TargetID)
		if !ok {
			return Ref{}, false
		}
		cur = next
	}
}

// ResolveLink follows a LinkTarget to its Ref, traversing into an
// external graph via TraverseToCrateByID when the target is external.
// Shared by doc-comment link resolution and signature type-reference
// navigation (§4.G, §4.H).
func (r Ref) ResolveLink(target LinkTarget) (Ref, bool) {
	if r.IsZero() {
		return Ref{}, false
	}
	if target.IsExternal {
		destGraph, ok := r.Graph.TraverseToCrateByID(target.ExternalID)
		if !ok {
			return Ref{}, false
		}
		return destGraph.Get(target.LocalID)
	}
	return r.Graph.Get(target.LocalID)
}

// SiblingNames returns the display names of r's parent's other children,
// used to build suggestions when a path segment fails to match. parent
// must be the Ref this Ref was looked up under.
func SiblingNames(parent Ref) []string {
	if parent.IsZero() {
		return nil
	}
	names := make([]string, 0, len(parent.Item.Children))
	for _, id := range parent.Item.Children {
		if child, ok := parent.Graph.Get(id); ok {
			names = append(names, child.Item.Name)
		}
	}
	return names
}

// ExternalCrateOf resolves the display name and provenance class for the
// crate that defines target's trait, by external-crate id (0 = this
// crate). Used by docfmt's trait-implementation categorization (§4.H).
func (r Ref) ExternalCrateOf(externalID uint32) (name string, store *Store, ok bool) {
	if r.IsZero() {
		return "", nil, false
	}
	if externalID == 0 {
		return r.Graph.CrateName.String(), r.Graph, true
	}
	ext, exists := r.Graph.externalCrates[externalID]
	if !exists {
		return "", nil, false
	}
	dest, ok := r.Graph.TraverseToCrateByID(externalID)
	return ext.DisplayName, dest, ok
}
