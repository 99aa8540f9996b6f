package api

import "fmt"

// Endpoint paths, all relative to the configured base URL.
const (
	PathRegister       = "/users/register"
	PathLogin          = "/users/login"
	PathLogout         = "/users/logout"
	PathUserUpdate     = "/users/update"
	PathChangePassword = "/users/change-password"
	PathWithdraw       = "/users/withdraw"

	PathPosts   = "/qna"
	PathNotices = "/notices"

	PathReservations     = "/reservations"
	PathUserReservations = "/reservations/user"

	PathHospitalSearch = "/hospitals/search"

	PathChat = "/ai"
)

// CommentsPath returns the comment collection path for one post.
func CommentsPath(postID int) string {
	return fmt.Sprintf("%s/%d/comments", PathPosts, postID)
}

// Header names shared with the server.
const (
	// headerEncrypted marks a body as a codec envelope. The server mirrors
	// it on encrypted responses.
	headerEncrypted = "X-Encrypted"

	sessionCookieName = "session"
)
