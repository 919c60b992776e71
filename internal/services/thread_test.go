package services

import (
	"testing"
	"time"

	"haven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeComments(parents map[uint]uint, n int) []models.Comment {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flat := make([]models.Comment, 0, n)
	for i := 1; i <= n; i++ {
		c := models.Comment{
			ID:        uint(i),
			PostID:    1,
			Content:   "comment",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if p, ok := parents[uint(i)]; ok {
			pid := p
			c.ParentID = &pid
		}
		flat = append(flat, c)
	}
	return flat
}

// findNode walks the tree for a comment id.
func findNode(nodes []*CommentNode, id uint) *CommentNode {
	for _, n := range nodes {
		if n.Comment.ID == id {
			return n
		}
		if found := findNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

func TestBuildCommentTreeCountsEveryNode(t *testing.T) {
	flat := makeComments(map[uint]uint{2: 1, 3: 1, 4: 2, 6: 4}, 6)
	tree := BuildCommentTree(flat)

	assert.Equal(t, len(flat), CountNodes(tree), "total node count must equal the flat input length")
}

func TestBuildCommentTreePlacesRepliesUnderParents(t *testing.T) {
	flat := makeComments(map[uint]uint{2: 1, 3: 1, 4: 2}, 5)
	tree := BuildCommentTree(flat)

	// 1 and 5 are top level
	require.Len(t, tree, 2)
	assert.Equal(t, uint(1), tree[0].Comment.ID)
	assert.Equal(t, uint(5), tree[1].Comment.ID)

	parent := findNode(tree, 1)
	require.NotNil(t, parent)
	require.Len(t, parent.Children, 2)
	assert.Equal(t, uint(2), parent.Children[0].Comment.ID)
	assert.Equal(t, uint(3), parent.Children[1].Comment.ID)

	reply := findNode(tree, 2)
	require.NotNil(t, reply)
	require.Len(t, reply.Children, 1)
	assert.Equal(t, uint(4), reply.Children[0].Comment.ID)
}

func TestBuildCommentTreeKeepsOrphansAtTopLevel(t *testing.T) {
	// Comment 3 declares parent 99, which is not in the set. It must stay
	// visible at the top level, not be dropped.
	flat := makeComments(map[uint]uint{2: 1, 3: 99}, 3)
	tree := BuildCommentTree(flat)

	require.Len(t, tree, 2)
	assert.Equal(t, uint(3), tree[1].Comment.ID)
	assert.Equal(t, 3, CountNodes(tree))
}

func TestBuildCommentTreeIsIdempotent(t *testing.T) {
	flat := makeComments(map[uint]uint{2: 1, 4: 2, 5: 3}, 6)

	first := BuildCommentTree(flat)
	second := BuildCommentTree(flat)

	var shape func(nodes []*CommentNode) [][]uint
	shape = func(nodes []*CommentNode) [][]uint {
		out := make([][]uint, 0, len(nodes))
		for _, n := range nodes {
			ids := []uint{n.Comment.ID}
			for _, child := range shape(n.Children) {
				ids = append(ids, child...)
			}
			out = append(out, ids)
		}
		return out
	}
	assert.Equal(t, shape(first), shape(second), "building twice must yield structurally identical trees")
}

func TestBuildCommentTreeFiveCommentScenario(t *testing.T) {
	// Five comments, comment 3 is the parent of comment 5: four top-level
	// nodes, and comment 3 has exactly one child.
	flat := makeComments(map[uint]uint{5: 3}, 5)
	tree := BuildCommentTree(flat)

	require.Len(t, tree, 4)
	assert.Equal(t, 5, CountNodes(tree))

	third := findNode(tree, 3)
	require.NotNil(t, third)
	require.Len(t, third.Children, 1)
	assert.Equal(t, uint(5), third.Children[0].Comment.ID)
}

func TestBuildCommentTreeEmptyInput(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.Empty(t, tree)
	assert.Zero(t, CountNodes(tree))
}
