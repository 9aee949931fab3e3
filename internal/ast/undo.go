/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package ast

// TokenSink is implemented by the parser's push-back deque. Undo pushes
// handles back onto it in the reverse order they were originally consumed
// (spec.md §4.3, "Undo").
type TokenSink interface {
	PushBack(handle int)
}

// FirstHandle returns the handle of the leftmost token consumed to build
// n, in document order, or -1 if n owns no tokens at all (only possible
// for an empty composite). Used by the translator to recover a node's
// source position for diagnostics without needing direct access to the
// parser's token arena.
func FirstHandle(n Node) int {
	if n == nil {
		return -1
	}
	if h := n.Handle(); h >= 0 {
		return h
	}
	for _, part := range n.Parts() {
		if h := FirstHandle(part); h >= 0 {
			return h
		}
	}
	return -1
}

// Undo restores every token n (and, recursively, its children) consumed
// to the front of sink, in reverse consumption order, then empties n's
// part list — making the node unusable afterward, per spec.md §4.3
// ("Undo is destructive to the node").
func Undo(n Node, sink TokenSink) {
	if n == nil {
		return
	}
	parts := n.Parts()
	for i := len(parts) - 1; i >= 0; i-- {
		Undo(parts[i], sink)
	}
	if h := n.Handle(); h >= 0 {
		sink.PushBack(h)
	}
	n.ClearParts()
}
