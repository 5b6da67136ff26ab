// Package document provides the line-oriented text document that the
// renderer observes.
//
// A Document is an ordered sequence of lines ("blocks"). It always holds at
// least one line, so its block count is never below 1. Lines can be folded;
// folded lines stay in the document (they keep their index and number) but
// contribute no vertical space.
//
// The text is kept in a rope (package rope) whose nodes count newlines, so
// reading or editing a line costs time logarithmic in the document size.
//
// Vertical geometry is derived, never stored per line: every visible line
// has the same height, and a Fenwick tree over line visibility answers
// "how many visible lines precede line i" and "which line is the k-th
// visible one" in logarithmic time. That keeps the cost of locating the
// first visible block, stepping to the next one and computing a block's top
// independent of document size and of how many lines are folded.
//
// Usage:
//
//	doc, err := document.FromReader(f, 18)
//	first, ok := doc.FirstVisibleBlockFrom(scrollOffset)
//	for b, ok := first, ok; ok; b, ok = doc.Next(b) {
//	    top := doc.BlockTop(b) - scrollOffset
//	    ...
//	}
package document
