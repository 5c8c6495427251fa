// Package assemble orchestrates the pipeline that turns a news-article URL
// into a cached, publishable document: extraction, persona selection, post
// and reply generation, topic assignment, and synthetic timestamp/ID
// assignment.
package assemble

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"forumbot"
	"forumbot/llm"
	"forumbot/logger"
	"forumbot/persona"
	"forumbot/scrape"
	"forumbot/topics"
)

// Up to this many personas comment on each post.
const maxCommenters = 5

// Extractor is the article-extraction boundary. *scrape.Extractor satisfies
// it; tests substitute fakes.
type Extractor interface {
	Extract(ctx context.Context, url string) (*scrape.Article, error)
}

// Cache is the slice of the result store the assembler needs. *store.Store
// satisfies it.
type Cache interface {
	GetPost(url, topic string) (*forumbot.Document, error)
	SavePost(url, topic string, doc *forumbot.Document) error
	SaveArticle(url, title, text string) error
}

// Options wires an Assembler's collaborators. Rand and Now default to an
// unseeded source and the wall clock; tests inject both.
type Options struct {
	Extractor Extractor
	Posts     llm.PostGenerator
	Replies   llm.ReplyGenerator
	Personas  *persona.Store
	Topics    *topics.Vocabulary
	Cache     Cache
	Rand      *rand.Rand
	Now       func() time.Time
}

// Assembler builds documents from article URLs. Safe for concurrent use:
// the random source is the only mutable shared state and is guarded.
type Assembler struct {
	extractor Extractor
	posts     llm.PostGenerator
	replies   llm.ReplyGenerator
	personas  *persona.Store
	topics    *topics.Vocabulary
	cache     Cache
	now       func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an assembler. All collaborators except Rand and Now are
// required.
func New(opts Options) (*Assembler, error) {
	switch {
	case opts.Extractor == nil:
		return nil, fmt.Errorf("assembler requires an extractor")
	case opts.Posts == nil:
		return nil, fmt.Errorf("assembler requires a post generator")
	case opts.Replies == nil:
		return nil, fmt.Errorf("assembler requires a reply generator")
	case opts.Personas == nil:
		return nil, fmt.Errorf("assembler requires a persona store")
	case opts.Topics == nil:
		return nil, fmt.Errorf("assembler requires a topic vocabulary")
	case opts.Cache == nil:
		return nil, fmt.Errorf("assembler requires a cache")
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Assembler{
		extractor: opts.Extractor,
		posts:     opts.Posts,
		replies:   opts.Replies,
		personas:  opts.Personas,
		topics:    opts.Topics,
		cache:     opts.Cache,
		now:       now,
		rng:       rng,
	}, nil
}

// Process runs the full pipeline for one URL. forcedTopic may be empty; when
// set it is used verbatim as the document topic and as part of the cache
// key, and a cached document for (url, forcedTopic) short-circuits the whole
// pipeline. Validation of forced topics against the vocabulary is the
// caller's job.
//
// On extraction failure the error wraps scrape.ErrNoArticle. No partial
// document is ever returned or cached.
func (a *Assembler) Process(ctx context.Context, url, forcedTopic string) (*forumbot.Document, error) {
	if forcedTopic != "" {
		cached, err := a.cache.GetPost(url, forcedTopic)
		if err != nil {
			return nil, fmt.Errorf("cache lookup for %s: %w", url, err)
		}
		if cached != nil {
			logger.Log.Debugf("cache hit for %s topic %s", url, forcedTopic)
			return cached, nil
		}
	}

	started := a.now().UTC()

	article, err := a.extractor.Extract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}

	if err := a.cache.SaveArticle(url, article.Title, article.Text); err != nil {
		return nil, fmt.Errorf("cache article %s: %w", url, err)
	}

	author := a.pickAuthor()

	draft, err := a.posts.GeneratePost(ctx, article.Title, article.Text, author)
	if err != nil {
		return nil, fmt.Errorf("generate post for %s: %w", url, err)
	}

	commenters := a.pickCommenters(author.Name)

	// Reply failures are recovered locally: the commenter is kept with an
	// empty body and the pipeline continues.
	replies := make([]string, len(commenters))
	for i, commenter := range commenters {
		reply, err := a.replies.GenerateReply(ctx, draft.Content, commenter)
		if err != nil {
			logger.Log.Warnf("reply generation failed for %s on %s: %v", commenter.Name, url, err)
			reply = ""
		}
		replies[i] = reply
	}

	topic := forcedTopic
	if topic == "" {
		topic = a.topics.Classify(draft.Content)
	}

	doc := a.buildDocument(started, draft, topic, author, commenters, replies)

	if forcedTopic != "" {
		if err := a.cache.SavePost(url, forcedTopic, doc); err != nil {
			return nil, fmt.Errorf("cache document for %s: %w", url, err)
		}
	}

	return doc, nil
}

// buildDocument assigns temporary identifiers and causally-ordered synthetic
// timestamps. The post is dated a random 1..1440 minutes before processing
// started; each comment follows the previous timestamp by a random 1..224
// minutes, so the sequence is strictly increasing and never precedes the
// post.
func (a *Assembler) buildDocument(started time.Time, draft *llm.PostDraft, topic string, author persona.Persona, commenters []persona.Persona, replies []string) *forumbot.Document {
	postTime := started.Add(-time.Duration(a.randBetween(1, 24*60)) * time.Minute)

	post := forumbot.GeneratedPost{
		TempPostID: tempID("post", 1),
		Title:      draft.Title,
		Content:    draft.Content,
		Topic:      topic,
		Username:   author.Name,
		CreatedAt:  postTime.Format(time.RFC3339),
	}

	lastTime := postTime
	for i, commenter := range commenters {
		nextTime := lastTime.Add(time.Duration(a.randBetween(1, 224)) * time.Minute)
		post.Comments = append(post.Comments, forumbot.GeneratedComment{
			TempCommentID: tempID("comment", i+1),
			Body:          replies[i],
			Username:      commenter.Name,
			CreatedAt:     nextTime.Format(time.RFC3339),
		})
		lastTime = nextTime
	}

	return &forumbot.Document{Posts: []forumbot.GeneratedPost{post}}
}

func (a *Assembler) pickAuthor() persona.Persona {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.personas.PickAuthor(a.rng)
}

func (a *Assembler) pickCommenters(authorName string) []persona.Persona {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.personas.PickCommenters(a.rng, authorName, maxCommenters)
}

// randBetween returns a uniform random integer in [min, max] inclusive.
func (a *Assembler) randBetween(min, max int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return min + a.rng.Intn(max-min+1)
}

// tempID formats a temporary identifier like "post_001" or "comment_012".
func tempID(prefix string, index int) string {
	return fmt.Sprintf("%s_%03d", prefix, index)
}
