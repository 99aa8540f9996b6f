package services

import (
	"context"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/models"
)

// CommentService reads and writes post comments. The server returns a flat
// list; the adapter assembles the two-level tree the UI renders.
type CommentService struct {
	api api.Client
	log logging.Logger
}

func NewCommentService(client api.Client, log logging.Logger) *CommentService {
	if log == nil {
		log = logging.Nop{}
	}
	return &CommentService{api: client, log: log}
}

// Comments fetches all comments of a post as a two-level tree: top-level
// comments in server order, each carrying its replies. A reply whose parent
// is not a top-level comment is dropped, not an error.
func (s *CommentService) Comments(ctx context.Context, postID int) ([]models.Comment, error) {
	outcome := s.api.Get(ctx, api.CommentsPath(postID))

	success, ok := outcome.(api.Success)
	if !ok {
		return nil, outcomeError(outcome)
	}

	flat := make([]models.Comment, 0)
	for _, o := range success.Data.Objects("comments") {
		flat = append(flat, models.Comment{
			ID:        o.OptInt("id", 0),
			PostID:    postID,
			UserID:    o.OptInt("user_id", 0),
			UserName:  o.OptString("username", ""),
			Body:      o.OptString("comment", ""),
			CreatedAt: o.OptString("created_at", ""),
			ParentID:  o.OptInt("parent_id", 0),
		})
	}
	return assembleTree(flat), nil
}

// WriteComment posts a comment; parentID > 0 makes it a reply.
func (s *CommentService) WriteComment(ctx context.Context, postID int, text string, parentID int) error {
	payload := api.Document{"comment": text}
	if parentID > 0 {
		payload["parent_id"] = parentID
	}
	outcome := s.api.Post(ctx, api.CommentsPath(postID), payload)
	return requireSuccess(outcome, "comment rejected")
}

// assembleTree partitions the flat list into top-level comments and
// replies, attaching each reply to its parent by id. Replies pointing at a
// non-top-level (or unknown) parent are silently discarded: the model is a
// two-level tree, nothing deeper.
func assembleTree(flat []models.Comment) []models.Comment {
	top := make([]models.Comment, 0)
	index := make(map[int]int)
	for _, c := range flat {
		if c.ParentID == 0 {
			index[c.ID] = len(top)
			top = append(top, c)
		}
	}

	for _, c := range flat {
		if c.ParentID == 0 {
			continue
		}
		if i, ok := index[c.ParentID]; ok {
			top[i].Replies = append(top[i].Replies, c)
		}
	}
	return top
}
