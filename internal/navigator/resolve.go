package navigator

import (
	"context"
	"strings"

	"rdoc/internal/docgraph"
	"rdoc/internal/semverreq"
	"rdoc/internal/similarity"
)

// ResolveResult is what ResolvePath hands back: either a located Ref, or
// a set of ranked suggestions when resolution failed (§4.D resolve_path).
type ResolveResult struct {
	Ref         docgraph.Ref
	Found       bool
	Suggestions []similarity.Suggestion
}

// ResolvePath is the user-visible entrypoint (§4.D resolve_path): splits
// the crate part (which may embed "@version-req") from the rest, loads
// the crate, then descends segment by segment by display name,
// transparently following Use re-exports.
func (n *Navigator) ResolvePath(ctx context.Context, path string) ResolveResult {
	cratePart, rest := splitCratePart(path)
	crateName, req := splitVersionReq(cratePart)

	store, ok := n.LoadCrate(ctx, crateName, req)
	if !ok {
		return ResolveResult{Suggestions: n.suggestCrateNames(crateName)}
	}

	root, ok := store.Root()
	if !ok {
		return ResolveResult{}
	}
	if rest == "" {
		return ResolveResult{Ref: root, Found: true}
	}

	segments := strings.Split(rest, "::")
	cur := root
	for _, seg := range segments {
		next, ok := cur.ChildByName(seg)
		if !ok {
			return ResolveResult{Suggestions: suggestSiblings(seg, cur)}
		}
		cur = next
	}
	return ResolveResult{Ref: cur, Found: true}
}

// GetItemFromIDPath implements get_item_from_id_path (§4.D): descend a
// crate graph by a sequence of local ids, following Use items
// transparently, and accumulate the display-name path walked.
func (n *Navigator) GetItemFromIDPath(ctx context.Context, crateName string, ids []uint32) (docgraph.Ref, []string, bool) {
	store, ok := n.LoadCrate(ctx, crateName, semverreq.Any)
	if !ok {
		return docgraph.Ref{}, nil, false
	}
	cur, ok := store.Root()
	if !ok {
		return docgraph.Ref{}, nil, false
	}
	names := make([]string, 0, len(ids)+1)
	names = append(names, cur.Item.Name)
	for _, id := range ids {
		next, ok := cur.ChildByID(id)
		if !ok {
			return docgraph.Ref{}, nil, false
		}
		cur = next
		names = append(names, cur.Item.Name)
	}
	return cur, names, true
}

// splitCratePart splits on the first "::" (§4.D resolve_path).
func splitCratePart(path string) (cratePart, rest string) {
	i := strings.Index(path, "::")
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+2:]
}

// splitVersionReq extracts an "@version-req" suffix from the crate part,
// defaulting to Any when absent (§4.D: "The crate-part may embed @ to
// carry a version requirement (otherwise *)").
func splitVersionReq(cratePart string) (name string, req semverreq.Req) {
	i := strings.IndexByte(cratePart, '@')
	if i < 0 {
		return cratePart, semverreq.Any
	}
	parsed, err := semverreq.Parse(cratePart[i+1:])
	if err != nil {
		return cratePart[:i], semverreq.Any
	}
	return cratePart[:i], parsed
}

// suggestCrateNames ranks every known crate name (Std ∪ Local; Remote is
// never enumerated) against query (§4.D: "populates out suggestions by
// scoring all available crate names").
func (n *Navigator) suggestCrateNames(query string) []similarity.Suggestion {
	infos := n.ListAvailableCrates()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name.String())
	}
	return similarity.Rank(query, names, 5)
}

// suggestSiblings ranks parent's other children against a failed
// segment match (§4.D: "collects similarity-scored siblings as
// suggestions").
func suggestSiblings(query string, parent docgraph.Ref) []similarity.Suggestion {
	names := docgraph.SiblingNames(parent)
	return similarity.Rank(query, names, 5)
}
