package forumbot

// Document is the complete unit of caching and publishing: one generated
// post together with its ordered comments, wrapped in a posts array so the
// on-disk and on-the-wire shape matches the bulk-upload contract exactly.
type Document struct {
	Posts []GeneratedPost `json:"posts"`
}

// GeneratedPost is a persona-voiced forum post synthesized from a news
// article.
type GeneratedPost struct {
	TempPostID string             `json:"temp_post_id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Topic      string             `json:"topic"`
	Username   string             `json:"username"`
	CreatedAt  string             `json:"created_at"`
	Comments   []GeneratedComment `json:"comments"`
}

// GeneratedComment is a single persona-voiced reply under a generated post.
// Comments are ordered: the Nth comment's timestamp is never earlier than
// the (N-1)th's, and never earlier than the post's.
type GeneratedComment struct {
	TempCommentID string `json:"temp_comment_id"`
	Body          string `json:"body"`
	Username      string `json:"username"`
	CreatedAt     string `json:"created_at"`
}
