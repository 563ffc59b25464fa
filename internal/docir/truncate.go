package docir

// WidthFunc measures how many soft-wrapped lines a node would occupy at
// the given render width. The real measurement lives in doclayout (it
// needs the soft-wrap policy, §4.J); truncation only needs a line count,
// so it's injected rather than imported, keeping docir layout-agnostic.
type WidthFunc func(node Node, width int) int

// skippedAsNonFirst reports whether kind is in the truncation table's
// "skipped unless first child" set (§4.F).
func skippedAsNonFirst(n Node) bool {
	switch n.(type) {
	case List, CodeBlock, GeneratedCode, Heading:
		return true
	default:
		return false
	}
}

// VisibleChildren computes which of body's nodes are kept at the given
// truncation level and render width, returning the kept slice and
// whether truncation actually elided anything (§4.F truncation
// semantics table + "boundary search for Brief" paragraph).
func VisibleChildren(level TruncationLevel, body []Node, width int, lineWidth WidthFunc) (kept []Node, truncated bool) {
	if level == LevelFull {
		return body, false
	}

	limit := level.LineLimit()
	var lines int
	for i, child := range body {
		if i > 0 && skippedAsNonFirst(child) {
			return body[:i], true
		}
		lines += lineWidth(child, width)
		if lines > limit {
			if i == 0 {
				// Always keep at least the first paragraph/heading, per
				// "Kept children: first paragraph/heading only".
				return body[:1], len(body) > 1
			}
			return body[:i], true
		}
		if level == LevelBrief && isParagraphBreak(body, i) {
			// Brief stops at the first second-paragraph-break boundary
			// within the limit, not just when the limit is exceeded.
			return body[:i+1], i+1 < len(body)
		}
	}
	return body, false
}

// isParagraphBreak reports whether index i is the second Paragraph
// encountered in body, the Brief-mode boundary named in §4.F ("up to a
// second-paragraph-break boundary").
func isParagraphBreak(body []Node, i int) bool {
	count := 0
	for j := 0; j <= i; j++ {
		if _, ok := body[j].(Paragraph); ok {
			count++
		}
	}
	return count >= 2 && i < len(body)-0 && isParagraph(body[i])
}

func isParagraph(n Node) bool {
	_, ok := n.(Paragraph)
	return ok
}
