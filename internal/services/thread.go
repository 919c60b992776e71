package services

import (
	"haven/internal/models"
)

// CommentNode is one node of the threaded reply tree, derived fresh from the
// flat comment list on every read. ContentHTML is filled by the handler when
// rendering a detail response.
type CommentNode struct {
	Comment     models.Comment `json:"comment"`
	ContentHTML string         `json:"content_html,omitempty"`
	Children    []*CommentNode `json:"children"`
}

// BuildCommentTree threads a flat list of comments ordered by creation time
// ascending. Each comment with a resolvable parent reference becomes a child
// of that parent; everything else (nil parent, or a parent missing from the
// set) lands at the top level. Nothing is ever dropped, so the total node
// count always equals len(flat).
func BuildCommentTree(flat []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(flat))
	for i := range flat {
		nodes[flat[i].ID] = &CommentNode{
			Comment:  flat[i],
			Children: []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0, len(flat))
	for i := range flat {
		node := nodes[flat[i].ID]
		if pid := flat[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
			// Dangling parent reference: keep the comment visible at
			// the top level rather than losing it.
		}
		roots = append(roots, node)
	}
	return roots
}

// CountNodes counts every node in the tree, nested replies included. Used
// for the denormalized comment count written back onto the post.
func CountNodes(nodes []*CommentNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountNodes(n.Children)
	}
	return total
}
