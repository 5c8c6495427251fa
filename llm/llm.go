// Package llm wraps the generative-text backends: a Cohere-backed post
// generator and a Gemini-backed reply generator, both persona-voiced.
package llm

import (
	"context"

	"forumbot/persona"
)

// PostDraft is the structured output of the post generator. Both fields are
// required; an empty title or content is treated as a failed generation.
type PostDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostGenerator produces a forum post from an article voiced by a persona.
type PostGenerator interface {
	GeneratePost(ctx context.Context, articleTitle, articleText string, p persona.Persona) (*PostDraft, error)
}

// ReplyGenerator produces a free-text reply to a post voiced by a persona.
// Callers treat a failed reply as non-fatal.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, postContent string, p persona.Persona) (string, error)
}
