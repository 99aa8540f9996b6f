package models

// Comment is a single comment on a post. Comments form a two-level tree:
// a top-level comment (ParentID == 0) owns a flat list of replies. Deeper
// nesting is not modeled.
type Comment struct {
	ID        int
	PostID    int
	UserID    int
	UserName  string
	Body      string
	CreatedAt string
	// ParentID is 0 for a top-level comment.
	ParentID int
	Replies  []Comment
}
