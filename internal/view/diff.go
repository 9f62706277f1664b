// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const keyAttr = "data-key"

// PatchOp names the kind of change a Patch carries.
type PatchOp string

const (
	// OpText replaces the direct text of the keyed element.
	OpText PatchOp = "text"
	// OpAttrs sets and removes attributes of the keyed element.
	OpAttrs PatchOp = "attrs"
	// OpInner replaces the inner HTML of a keyed element. Elements whose
	// children cannot be patched in place are rebuilt this way.
	OpInner PatchOp = "inner"
	// OpInsert adds HTML under the element keyed Parent (or the mount
	// point when Parent is empty): before the sibling keyed Before, or at
	// the end when Before is empty.
	OpInsert PatchOp = "insert"
	// OpMove moves the keyed element within Parent, positioned the same
	// way as OpInsert.
	OpMove PatchOp = "move"
	// OpRemove deletes the keyed element.
	OpRemove PatchOp = "remove"
	// OpReplace replaces the whole mount point with HTML.
	OpReplace PatchOp = "replace"
)

// Patch is one change to apply to a mounted view.
type Patch struct {
	Op     PatchOp           `json:"op"`
	Key    string            `json:"key,omitempty"`
	Parent string            `json:"parent,omitempty"`
	Before string            `json:"before,omitempty"`
	Text   string            `json:"text,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Remove []string          `json:"remove,omitempty"`
	HTML   string            `json:"html,omitempty"`
}

type node struct {
	text    string
	inner   string
	content string
	attrs   map[string]string
	parent  string
	html    string

	// next is the key of the following element sibling. Elements placed
	// directly under their keyed parent with a keyed (or no) next sibling
	// can be inserted or moved by reference to that sibling.
	next      string
	placeable bool
}

type snapshot struct {
	nodes map[string]node
	order []string
}

func readNode(sel *goquery.Selection) node {
	n := node{attrs: map[string]string{}}

	var text []string
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.TrimSpace(c.Text()); t != "" {
				text = append(text, t)
			}
		}
	})
	n.text = strings.Join(text, " ")

	// Leaf elements with markup of their own are compared as a whole.
	n.content, _ = sel.Html()
	if sel.Find("["+keyAttr+"]").Length() == 0 && sel.Children().Length() > 0 {
		n.inner = n.content
	}

	for _, a := range sel.Nodes[0].Attr {
		if a.Key == keyAttr {
			continue
		}
		n.attrs[a.Key] = a.Val
	}

	domParent := sel.Parent()
	if p := domParent.Closest("[" + keyAttr + "]"); p.Length() > 0 {
		n.parent, _ = p.Attr(keyAttr)
	}
	parentKey, parentKeyed := domParent.Attr(keyAttr)
	direct := (parentKeyed && parentKey == n.parent) || (n.parent == "" && goquery.NodeName(domParent) == "body")

	n.placeable = direct
	if sib := sel.Next(); sib.Length() > 0 {
		n.next, _ = sib.Attr(keyAttr)
		n.placeable = direct && n.next != ""
	}
	n.html, _ = goquery.OuterHtml(sel)
	return n
}

// diff compares two renders by key. Removals come first, then elements
// rebuilt whole, then insertions and moves, then in-place updates in the
// order of the new render. When the mount point itself would need
// rebuilding diff returns a single OpReplace carrying markup.
func diff(prev, next snapshot, markup string) []Patch {
	// A key survives when it keeps its keyed parent and that parent survives.
	kept := map[string]bool{}
	children := map[string][]string{}
	for _, key := range next.order {
		n := next.nodes[key]
		children[n.parent] = append(children[n.parent], key)
		if o, ok := prev.nodes[key]; ok && o.parent == n.parent && (n.parent == "" || kept[n.parent]) {
			kept[key] = true
		}
	}
	prevIndex := make(map[string]int, len(prev.order))
	for i, key := range prev.order {
		prevIndex[key] = i
	}

	rebuild := map[string]bool{}
	var placed []Patch
	for _, parent := range parentsOf(next) {
		if parent != "" && !kept[parent] {
			continue // inserted with its parent
		}
		moves, ok := placeChildren(children[parent], parent, next, kept, prevIndex)
		if !ok {
			if parent == "" {
				return []Patch{{Op: OpReplace, HTML: markup}}
			}
			rebuild[parent] = true
			continue
		}
		placed = append(placed, moves...)
	}

	var patches []Patch
	for _, key := range prev.order {
		if kept[key] {
			continue
		}
		if p := prev.nodes[key].parent; p != "" && !kept[p] {
			continue // removed with its parent
		}
		if within(key, prev, rebuild) {
			continue
		}
		patches = append(patches, Patch{Op: OpRemove, Key: key})
	}

	for _, key := range next.order {
		if rebuild[key] && !within(key, next, rebuild) {
			patches = append(patches, Patch{Op: OpInner, Key: key, HTML: next.nodes[key].content})
		}
	}

	for _, p := range placed {
		if !rebuild[p.Parent] && !within(p.Parent, next, rebuild) {
			patches = append(patches, p)
		}
	}

	for _, key := range next.order {
		if !kept[key] || within(key, next, rebuild) {
			continue
		}
		n, o := next.nodes[key], prev.nodes[key]
		if !rebuild[key] {
			if o.inner != n.inner {
				patches = append(patches, Patch{Op: OpInner, Key: key, HTML: n.inner})
			} else if n.inner == "" && o.text != n.text {
				patches = append(patches, Patch{Op: OpText, Key: key, Text: n.text})
			}
		}
		if set, removed := attrChanges(o.attrs, n.attrs); len(set) > 0 || len(removed) > 0 {
			patches = append(patches, Patch{Op: OpAttrs, Key: key, Attrs: set, Remove: removed})
		}
	}
	return patches
}

// parentsOf lists the keyed parents of s in document order, the mount
// point ("") first.
func parentsOf(s snapshot) []string {
	parents := []string{""}
	for _, key := range s.order {
		parents = append(parents, key)
	}
	return parents
}

// placeChildren returns the inserts and moves that turn the surviving
// children of parent into keys. Children keeping their relative order stay
// put; the rest are placed last to first, each before its next sibling.
// It reports false when an element that must be placed has no sibling to
// be placed against.
func placeChildren(keys []string, parent string, next snapshot, kept map[string]bool, prevIndex map[string]int) ([]Patch, bool) {
	var (
		seq []int
		pos []int
	)
	for i, key := range keys {
		if kept[key] {
			seq = append(seq, prevIndex[key])
			pos = append(pos, i)
		}
	}
	stay := make([]bool, len(keys))
	for _, i := range increasingRun(seq) {
		stay[pos[i]] = true
	}

	var patches []Patch
	for i := len(keys) - 1; i >= 0; i-- {
		if stay[i] {
			continue
		}
		key := keys[i]
		n := next.nodes[key]
		if !n.placeable {
			return nil, false
		}
		if kept[key] {
			patches = append(patches, Patch{Op: OpMove, Key: key, Parent: parent, Before: n.next})
		} else {
			patches = append(patches, Patch{Op: OpInsert, Key: key, Parent: parent, Before: n.next, HTML: n.html})
		}
	}
	return patches, true
}

// increasingRun returns the indexes of a longest strictly increasing
// subsequence of seq.
func increasingRun(seq []int) []int {
	var (
		tails []int // index into seq of the smallest tail per length
		prev  = make([]int, len(seq))
	)
	for i, v := range seq {
		j := sort.Search(len(tails), func(k int) bool { return seq[tails[k]] >= v })
		if j > 0 {
			prev[i] = tails[j-1]
		} else {
			prev[i] = -1
		}
		if j == len(tails) {
			tails = append(tails, i)
		} else {
			tails[j] = i
		}
	}
	if len(tails) == 0 {
		return nil
	}
	run := make([]int, len(tails))
	for i, k := len(tails)-1, tails[len(tails)-1]; i >= 0; i, k = i-1, prev[k] {
		run[i] = k
	}
	return run
}

// within reports whether a keyed ancestor of key in s is in set.
func within(key string, s snapshot, set map[string]bool) bool {
	for p := s.nodes[key].parent; p != ""; p = s.nodes[p].parent {
		if set[p] {
			return true
		}
	}
	return false
}

func attrChanges(prev, next map[string]string) (map[string]string, []string) {
	set := map[string]string{}
	for k, v := range next {
		if old, ok := prev[k]; !ok || old != v {
			set[k] = v
		}
	}
	var removed []string
	for k := range prev {
		if _, ok := next[k]; !ok {
			removed = append(removed, k)
		}
	}
	sort.Strings(removed)
	if len(set) == 0 {
		set = nil
	}
	return set, removed
}
