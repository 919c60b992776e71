package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"haven/internal/models"
	"haven/internal/store"
	"haven/internal/utils"
)

// SubmissionOutcome is the terminal state of one submission attempt.
type SubmissionOutcome string

const (
	// OutcomeBlocked: urgent_risk verdict. Content discarded, crisis
	// resources surfaced.
	OutcomeBlocked SubmissionOutcome = "blocked"
	// OutcomeRejected: harmful_instruction verdict. Content discarded.
	OutcomeRejected SubmissionOutcome = "rejected"
	// OutcomeWarned: support_needed verdict. Nothing persisted; the caller
	// may confirm with the override token to post anyway.
	OutcomeWarned SubmissionOutcome = "warned"
	// OutcomePersisted: row written, comment count refreshed.
	OutcomePersisted SubmissionOutcome = "persisted"
)

var (
	ErrEmptyContent    = errors.New("content is empty")
	ErrOverrideExpired = errors.New("override token is unknown or expired")
	ErrParentMismatch  = errors.New("parent comment does not belong to this post")
)

// SubmissionResult carries everything a handler needs to answer one attempt.
type SubmissionResult struct {
	Outcome SubmissionOutcome         `json:"outcome"`
	Verdict models.ModerationAnalysis `json:"verdict"`

	CrisisResources []CrisisResource `json:"crisis_resources,omitempty"` // blocked
	SupportMessage  string           `json:"support_message,omitempty"`  // warned
	OverrideToken   string           `json:"override_token,omitempty"`   // warned

	Post         *models.Post    `json:"post,omitempty"`
	Comment      *models.Comment `json:"comment,omitempty"`
	CommentCount int             `json:"comment_count,omitempty"`
}

// PostSubmission is one attempt to create a community post. UserID is nil
// for anonymous posts.
type PostSubmission struct {
	UserID      *uint
	DisplayName string
	Content     string
	Tags        []string
}

// CommentSubmission is one attempt to comment on a post. Commenting always
// requires a signed-in user.
type CommentSubmission struct {
	UserID      uint
	DisplayName string
	Content     string
	Post        *models.Post
	ParentID    *uint
}

// SubmissionService orchestrates a submission attempt: classify, branch on
// the verdict, persist, and keep the post's denormalized comment count in
// step. One attempt is in flight per caller at a time; the service itself
// holds no per-attempt state outside the pending-override stash.
type SubmissionService struct {
	classifier Classifier
	support    SupportWriter
	posts      store.PostStore
	comments   store.CommentStore
	pending    *utils.GlobalCache
}

// overrideTTL bounds how long a warned submission can wait for its "post
// anyway" confirmation. After expiry the client has to resubmit, which
// classifies afresh.
const overrideTTL = 10 * time.Minute

// pendingCacheSize bounds concurrently warned submissions. The stash is a
// dedicated cache so response-cache churn cannot evict a live token inside
// its TTL.
const pendingCacheSize = 256

func NewSubmissionService(classifier Classifier, support SupportWriter, posts store.PostStore, comments store.CommentStore) *SubmissionService {
	return &SubmissionService{
		classifier: classifier,
		support:    support,
		posts:      posts,
		comments:   comments,
		pending:    utils.NewCache(pendingCacheSize),
	}
}

type pendingPost struct {
	sub     PostSubmission
	verdict models.ModerationAnalysis
}

type pendingComment struct {
	sub     CommentSubmission
	verdict models.ModerationAnalysis
}

// SubmitPost classifies and resolves one post attempt.
func (s *SubmissionService) SubmitPost(ctx context.Context, sub PostSubmission) (*SubmissionResult, error) {
	sub.Content = strings.TrimSpace(sub.Content)
	if sub.Content == "" {
		return nil, ErrEmptyContent
	}

	verdict := s.classifier.Classify(ctx, sub.Content, "")

	switch verdict.Category {
	case models.CategoryUrgentRisk:
		return blockedResult(verdict), nil
	case models.CategoryHarmfulInstruction:
		return rejectedResult(verdict), nil
	case models.CategorySupportNeeded:
		return s.warnPost(ctx, sub, verdict), nil
	default:
		return s.persistPost(sub, verdict)
	}
}

// ConfirmPost persists a previously warned post using the verdict computed
// at warn time; there is no re-classification.
func (s *SubmissionService) ConfirmPost(token string) (*SubmissionResult, error) {
	key := "submission:post:" + token
	val := s.pending.Get(key)
	if val == nil {
		return nil, ErrOverrideExpired
	}
	s.pending.Delete(key)

	p, ok := val.(pendingPost)
	if !ok {
		return nil, ErrOverrideExpired
	}
	return s.persistPost(p.sub, p.verdict)
}

// SubmitComment classifies one comment attempt against its parent post's
// content and resolves it.
func (s *SubmissionService) SubmitComment(ctx context.Context, sub CommentSubmission) (*SubmissionResult, error) {
	sub.Content = strings.TrimSpace(sub.Content)
	if sub.Content == "" {
		return nil, ErrEmptyContent
	}

	if err := s.checkParent(sub); err != nil {
		return nil, err
	}

	verdict := s.classifier.Classify(ctx, sub.Content, sub.Post.Content)

	switch verdict.Category {
	case models.CategoryUrgentRisk:
		return blockedResult(verdict), nil
	case models.CategoryHarmfulInstruction:
		return rejectedResult(verdict), nil
	case models.CategorySupportNeeded:
		return s.warnComment(ctx, sub, verdict), nil
	default:
		return s.persistComment(sub, verdict)
	}
}

// ConfirmComment persists a previously warned comment with its stashed
// verdict.
func (s *SubmissionService) ConfirmComment(token string) (*SubmissionResult, error) {
	key := "submission:comment:" + token
	val := s.pending.Get(key)
	if val == nil {
		return nil, ErrOverrideExpired
	}
	s.pending.Delete(key)

	p, ok := val.(pendingComment)
	if !ok {
		return nil, ErrOverrideExpired
	}
	return s.persistComment(p.sub, p.verdict)
}

// checkParent enforces the threading invariant on write: a reply must point
// at an existing comment of the same post.
func (s *SubmissionService) checkParent(sub CommentSubmission) error {
	if sub.ParentID == nil {
		return nil
	}
	parent, err := s.comments.GetByID(*sub.ParentID)
	if err != nil {
		return ErrParentMismatch
	}
	if parent.PostID != sub.Post.ID {
		return ErrParentMismatch
	}
	return nil
}

func blockedResult(verdict models.ModerationAnalysis) *SubmissionResult {
	return &SubmissionResult{
		Outcome:         OutcomeBlocked,
		Verdict:         verdict,
		CrisisResources: CrisisResources(),
	}
}

func rejectedResult(verdict models.ModerationAnalysis) *SubmissionResult {
	return &SubmissionResult{
		Outcome: OutcomeRejected,
		Verdict: verdict,
	}
}

func (s *SubmissionService) warnPost(ctx context.Context, sub PostSubmission, verdict models.ModerationAnalysis) *SubmissionResult {
	msg := s.support.Generate(ctx, sub.Content)
	if verdict.SupportNeeded == nil {
		verdict.SupportNeeded = &models.SupportNeededAnalysis{Severity: 1}
	}
	verdict.SupportNeeded.SupportMessage = msg

	token := utils.NewPublicID(24)
	s.pending.Set("submission:post:"+token, pendingPost{sub: sub, verdict: verdict}, overrideTTL)

	return &SubmissionResult{
		Outcome:        OutcomeWarned,
		Verdict:        verdict,
		SupportMessage: msg,
		OverrideToken:  token,
	}
}

func (s *SubmissionService) warnComment(ctx context.Context, sub CommentSubmission, verdict models.ModerationAnalysis) *SubmissionResult {
	msg := s.support.Generate(ctx, sub.Content)
	if verdict.SupportNeeded == nil {
		verdict.SupportNeeded = &models.SupportNeededAnalysis{Severity: 1}
	}
	verdict.SupportNeeded.SupportMessage = msg

	token := utils.NewPublicID(24)
	s.pending.Set("submission:comment:"+token, pendingComment{sub: sub, verdict: verdict}, overrideTTL)

	return &SubmissionResult{
		Outcome:        OutcomeWarned,
		Verdict:        verdict,
		SupportMessage: msg,
		OverrideToken:  token,
	}
}

func (s *SubmissionService) persistPost(sub PostSubmission, verdict models.ModerationAnalysis) (*SubmissionResult, error) {
	post := models.Post{
		Pid:         utils.NewPublicID(8),
		UserID:      sub.UserID,
		DisplayName: sub.DisplayName,
		Content:     sub.Content,
		Tags:        sub.Tags,
		Moderation:  verdict,
	}
	if err := s.posts.Insert(&post); err != nil {
		return nil, fmt.Errorf("failed to persist post: %w", err)
	}

	return &SubmissionResult{
		Outcome: OutcomePersisted,
		Verdict: verdict,
		Post:    &post,
	}, nil
}

func (s *SubmissionService) persistComment(sub CommentSubmission, verdict models.ModerationAnalysis) (*SubmissionResult, error) {
	comment := models.Comment{
		Cid:         utils.NewPublicID(8),
		PostID:      sub.Post.ID,
		UserID:      sub.UserID,
		ParentID:    sub.ParentID,
		DisplayName: sub.DisplayName,
		Content:     sub.Content,
		Moderation:  verdict,
	}
	if err := s.comments.Insert(&comment); err != nil {
		return nil, fmt.Errorf("failed to persist comment: %w", err)
	}

	// Recompute the denormalized count from the full thread. Best-effort:
	// the comment stays even when the count write fails, and the count
	// heals on the next successful insert.
	count, err := s.recountComments(sub.Post.ID)
	if err != nil {
		log.Printf("[submission] comment %s persisted but count refresh failed for post %d: %v", comment.Cid, sub.Post.ID, err)
		count = sub.Post.CommentCount
	}
	sub.Post.CommentCount = count

	return &SubmissionResult{
		Outcome:      OutcomePersisted,
		Verdict:      verdict,
		Post:         sub.Post,
		Comment:      &comment,
		CommentCount: count,
	}, nil
}

// recountComments rebuilds the full thread and writes the true recursive
// node count back onto the post row.
func (s *SubmissionService) recountComments(postID uint) (int, error) {
	flat, err := s.comments.ListByPost(postID)
	if err != nil {
		return 0, fmt.Errorf("failed to list comments: %w", err)
	}

	count := CountNodes(BuildCommentTree(flat))
	if err := s.posts.UpdateCommentCount(postID, count); err != nil {
		return count, fmt.Errorf("failed to write comment count: %w", err)
	}
	return count, nil
}
