package handlers

import (
	"strings"
	"testing"

	"haven/internal/models"
	"haven/internal/services"
)

func TestRenderThreadFillsEveryNode(t *testing.T) {
	parent := uint(1)
	flat := []models.Comment{
		{ID: 1, Cid: "aaaaaaaa", PostID: 1, Content: "**top** level"},
		{ID: 2, Cid: "bbbbbbbb", PostID: 1, ParentID: &parent, Content: "a _nested_ reply"},
	}

	tree := services.BuildCommentTree(flat)
	renderThread(tree)

	if len(tree) != 1 {
		t.Fatalf("top-level nodes = %d, want 1", len(tree))
	}
	if !strings.Contains(tree[0].ContentHTML, "<strong>top</strong>") {
		t.Errorf("top-level ContentHTML = %q, want rendered markdown", tree[0].ContentHTML)
	}
	if len(tree[0].Children) != 1 {
		t.Fatalf("children = %d, want 1", len(tree[0].Children))
	}
	if !strings.Contains(tree[0].Children[0].ContentHTML, "<em>nested</em>") {
		t.Errorf("nested ContentHTML = %q, want rendered markdown", tree[0].Children[0].ContentHTML)
	}
}
