package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Posts lists the community feed.
func (a *App) Posts(ctx context.Context) error {
	posts, err := a.posts.Posts(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load posts:", err)
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
		return nil
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "#%d  %s  by %s (%s)  comments: %d\n", p.ID, p.Title, p.Writer, p.CreatedAt, p.Comments)
	}
	return nil
}

// WritePost prompts for a title and a body and publishes a post.
func (a *App) WritePost(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Write your post", a.out)
	if err != nil {
		return err
	}

	if err := a.posts.WritePost(ctx, title, content); err != nil {
		fmt.Fprintln(a.out, "Could not publish:", err)
		return err
	}
	fmt.Fprintln(a.out, "Posted.")
	return nil
}

// Comments shows the comment tree of one post.
func (a *App) Comments(ctx context.Context) error {
	postID, err := a.askPostID()
	if err != nil {
		return err
	}

	tree, err := a.comments.Comments(ctx, postID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load comments:", err)
		return err
	}
	if len(tree) == 0 {
		fmt.Fprintln(a.out, "No comments.")
		return nil
	}
	for _, c := range tree {
		fmt.Fprintf(a.out, "[%d] %s: %s\n", c.ID, c.UserName, c.Body)
		for _, r := range c.Replies {
			fmt.Fprintf(a.out, "    [%d] %s: %s\n", r.ID, r.UserName, r.Body)
		}
	}
	return nil
}

// WriteComment posts a comment, optionally as a reply.
func (a *App) WriteComment(ctx context.Context) error {
	postID, err := a.askPostID()
	if err != nil {
		return err
	}

	text, err := getSimpleText(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}

	parentRaw, err := getSimpleText(a.reader, "Reply to comment id (empty for top level)", a.out)
	if err != nil {
		return err
	}
	parentID := 0
	if parentRaw != "" {
		parentID, err = strconv.Atoi(parentRaw)
		if err != nil {
			fmt.Fprintln(a.out, "Not a number:", parentRaw)
			return err
		}
	}

	if err := a.comments.WriteComment(ctx, postID, text, parentID); err != nil {
		fmt.Fprintln(a.out, "Could not comment:", err)
		return err
	}
	fmt.Fprintln(a.out, "Comment posted.")
	return nil
}

// Notices lists the service announcements.
func (a *App) Notices(ctx context.Context) error {
	notices, err := a.posts.Notices(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load notices:", err)
		return err
	}
	if len(notices) == 0 {
		fmt.Fprintln(a.out, "No notices.")
		return nil
	}
	for _, n := range notices {
		mark := " "
		if n.Important {
			mark = "!"
		}
		fmt.Fprintf(a.out, "%s #%d  %s (%s)\n", mark, n.ID, n.Title, n.CreatedAt)
	}
	return nil
}

func (a *App) askPostID() (int, error) {
	raw, err := getSimpleText(a.reader, "Post id", a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(a.out, "Not a number:", raw)
		return 0, err
	}
	return id, nil
}
