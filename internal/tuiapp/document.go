package tuiapp

import "rdoc/internal/docir"

// Document is a formatted item's IR, the unit Mode.SavedDoc carries and
// the worker goroutine hands back in every workerproto.RequestResponse.
type Document = []docir.Node

// pathAt walks doc by a NodePath's segments, mirroring the same descent
// doclayout.Render uses (a List item consumes two segments: the item
// index, then the block index within it), to find the node an
// ExpandBlock action names. It returns the parent slice and index so the
// caller can replace the element in place.
func pathAt(doc Document, path docir.NodePath) (parent []docir.Node, index int, ok bool) {
	segs := path.Segments()
	cur := doc
	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		if seg < 0 || seg >= len(cur) {
			return nil, 0, false
		}
		if i == len(segs)-1 {
			return cur, seg, true
		}
		switch v := cur[seg].(type) {
		case docir.Section:
			cur = v.Body
		case docir.BlockQuote:
			cur = v.Body
		case docir.TruncatedBlock:
			cur = v.Body
		case docir.List:
			i++
			if i >= len(segs) {
				return nil, 0, false
			}
			itemIdx := segs[i]
			if itemIdx < 0 || itemIdx >= len(v.Items) {
				return nil, 0, false
			}
			cur = v.Items[itemIdx]
		default:
			return nil, 0, false
		}
	}
	return nil, 0, false
}

// ExpandAt replaces the TruncatedBlock node addressed by path with its
// next truncation level, in place, returning whether anything changed
// (§4.J ExpandBlock action: "advances that node's TruncationLevel by
// one step").
func ExpandAt(doc Document, path docir.NodePath) bool {
	parent, index, ok := pathAt(doc, path)
	if !ok {
		return false
	}
	tb, ok := parent[index].(docir.TruncatedBlock)
	if !ok {
		return false
	}
	next := tb.Level.Next()
	if next == tb.Level {
		return false
	}
	parent[index] = docir.TruncatedBlock{Level: next, Body: tb.Body}
	return true
}
