package services

import (
	"context"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/models"
)

// PostService reads and writes community (Q&A) posts and notices.
type PostService struct {
	api api.Client
	log logging.Logger
}

func NewPostService(client api.Client, log logging.Logger) *PostService {
	if log == nil {
		log = logging.Nop{}
	}
	return &PostService{api: client, log: log}
}

// Posts fetches the community feed.
func (s *PostService) Posts(ctx context.Context) ([]models.Post, error) {
	outcome := s.api.Get(ctx, api.PathPosts)

	success, ok := outcome.(api.Success)
	if !ok {
		return nil, outcomeError(outcome)
	}

	posts := make([]models.Post, 0)
	for _, item := range listItems(success.Data) {
		posts = append(posts, models.Post{
			ID:    item.OptInt("id", 0),
			Title: item.OptString("title", ""),
			// the qna endpoint names the body field "comment"
			Content:   item.OptString("comment", item.OptString("content", "")),
			Writer:    item.OptString("writer", ""),
			CreatedAt: item.OptString("created_at", ""),
			Likes:     item.OptInt("likes", 0),
			Comments:  item.OptInt("comments", 0),
		})
	}
	return posts, nil
}

// WritePost publishes a new post.
func (s *PostService) WritePost(ctx context.Context, title, content string) error {
	outcome := s.api.Post(ctx, api.PathPosts, api.Document{
		"title":   title,
		"comment": content,
	})
	return requireSuccess(outcome, "post rejected")
}

// Notices fetches the service announcements.
func (s *PostService) Notices(ctx context.Context) ([]models.Notice, error) {
	outcome := s.api.Get(ctx, api.PathNotices)

	success, ok := outcome.(api.Success)
	if !ok {
		return nil, outcomeError(outcome)
	}

	notices := make([]models.Notice, 0)
	for _, item := range listItems(success.Data) {
		notices = append(notices, models.Notice{
			ID:        item.OptInt("id", 0),
			Title:     item.OptString("title", ""),
			Content:   item.OptString("content", ""),
			CreatedAt: item.OptString("created_at", ""),
			Important: item.OptBool("important", false),
		})
	}
	return notices, nil
}

// listItems extracts the object list of a list endpoint: data.items first,
// then a top-level items array. A missing list is an empty result, not an
// error.
func listItems(doc api.Document) []api.Document {
	if data := doc.Object("data"); data != nil {
		if items := data.Objects("items"); items != nil {
			return items
		}
	}
	return doc.Objects("items")
}
