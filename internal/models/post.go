package models

// Post is a community (Q&A) entry.
type Post struct {
	ID        int
	Title     string
	Content   string
	Writer    string
	CreatedAt string
	Likes     int
	Comments  int
}

// Notice is an announcement published by the service.
type Notice struct {
	ID        int
	Title     string
	Content   string
	CreatedAt string
	Important bool
}
