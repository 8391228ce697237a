// Package posts is the post ledger: the persisted list of posts and its
// like / add / clear operations. Posts live under a single key as a JSON
// array, newest first by insertion.
package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/clock"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/pkg/logger"
	"github.com/clawsandpaws/pawsd/pkg/metrics"
)

const storageKey = "posts_v2"

// ImageProvider resolves a default image for a team when a new post carries
// none. Its failures must never fail Add.
type ImageProvider interface {
	RandomImage(ctx context.Context, team model.Team) (string, error)
}

// Mirror is the optional remote post backend the ledger reconciles likes
// and new posts with.
type Mirror interface {
	Like(ctx context.Context, id string) error
	Create(ctx context.Context, p model.Post) error
}

// AddInput carries the caller-supplied fields for a new post.
type AddInput struct {
	Team     model.Team
	Author   string
	Title    string
	Body     string
	ImageURL *string
}

// Ledger stores the post list and exposes its mutations.
type Ledger struct {
	store  kv.Store
	images ImageProvider
	mirror Mirror
	clk    clock.Clock
	newID  func() string
	log    logger.Logger
}

// New creates a Ledger over store with default configuration.
func New(store kv.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		clk:   clock.System(nil),
		newID: defaultID,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// seed returns the fixed demo posts used to populate an empty store. Times
// come from the ledger clock so tests with a fake clock stay deterministic.
func (l *Ledger) seed() []model.Post {
	now := l.clk.Now()
	return []model.Post{
		{
			ID: "p1", Team: model.TeamCats, Author: "mira",
			Title: "Whiskers vs laser", Body: "Laser pointer supremacy.",
			Likes: 42, CreatedAt: now,
		},
		{
			ID: "p2", Team: model.TeamDogs, Author: "chase",
			Title: "Fetch league finals", Body: "Golden retriever clutch play.",
			Likes: 51, CreatedAt: now.Add(-time.Hour),
		},
	}
}

// Load returns all known posts in insertion order, newest first. On the
// first call against an empty store it persists and returns the seed set;
// the write makes seeding happen at most once. A stored value that fails to
// parse reads as the seed set without being overwritten.
func (l *Ledger) Load(ctx context.Context) ([]model.Post, error) {
	raw, ok, err := l.store.Get(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		seeded := l.seed()
		if err := l.save(ctx, seeded); err != nil {
			return nil, err
		}
		metrics.UpdatePostsTotal(len(seeded))
		return seeded, nil
	}
	var posts []model.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		l.log.Warn(ctx, "stored posts unreadable, serving seed set", logger.Error(err))
		return l.seed(), nil
	}
	metrics.UpdatePostsTotal(len(posts))
	return posts, nil
}

// Add creates a post from input and prepends it to the ledger. The id comes
// from a uuid, not the wall clock, so posts created in the same millisecond
// still get distinct ids. A missing image is resolved through the image
// provider; provider failure degrades to a nil image rather than failing
// the add. When a mirror is configured the post is also submitted there,
// best-effort.
func (l *Ledger) Add(ctx context.Context, in AddInput) (model.Post, error) {
	posts, err := l.Load(ctx)
	if err != nil {
		return model.Post{}, err
	}

	imageURL := in.ImageURL
	if imageURL == nil && l.images != nil {
		url, err := l.images.RandomImage(ctx, in.Team)
		if err != nil {
			metrics.RecordCollaboratorFailure("images")
			l.log.Warn(ctx, "image fetch failed, post gets no image", logger.Error(err))
		} else if url != "" {
			imageURL = &url
		}
	}

	post := model.Post{
		ID:        l.newID(),
		Team:      in.Team,
		Author:    in.Author,
		Title:     in.Title,
		Body:      in.Body,
		Likes:     0,
		CreatedAt: l.clk.Now(),
		ImageURL:  imageURL,
	}

	next := make([]model.Post, 0, len(posts)+1)
	next = append(next, post)
	next = append(next, posts...)
	if err := l.save(ctx, next); err != nil {
		return model.Post{}, err
	}
	metrics.RecordPostCreated()
	metrics.UpdatePostsTotal(len(next))

	if l.mirror != nil {
		if err := l.mirror.Create(ctx, post); err != nil {
			metrics.RecordCollaboratorFailure("mirror")
			l.log.Warn(ctx, "mirror create failed", logger.String("post", post.ID), logger.Error(err))
		}
	}
	return post, nil
}

// Like increments the named post's like count by exactly one. An unknown id
// is a silent no-op: the post may only exist on the remote mirror, and a
// like for it must not error out locally.
//
// With a mirror configured the increment is two-phase: applied locally
// first, then confirmed against the mirror, and rolled back when the mirror
// rejects it. The mirror call itself is at-least-once; a retried request
// can double-count remotely.
//
// Two overlapping Like calls for the same id race on the read-modify-write
// of the list and can lose an increment. The core takes no lock; callers
// arrive from a single UI thread in practice.
func (l *Ledger) Like(ctx context.Context, id string) error {
	posts, err := l.Load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	posts[idx].Likes++
	if err := l.save(ctx, posts); err != nil {
		return err
	}
	metrics.RecordLikeApplied()

	if l.mirror != nil {
		if err := l.mirror.Like(ctx, id); err != nil {
			metrics.RecordCollaboratorFailure("mirror")
			metrics.RecordLikeRolledBack()
			l.log.Warn(ctx, "mirror like failed, rolling back", logger.String("post", id), logger.Error(err))
			posts[idx].Likes--
			return l.save(ctx, posts)
		}
	}
	return nil
}

// ClearAll irrecoverably deletes every post. Used by account deletion.
func (l *Ledger) ClearAll(ctx context.Context) error {
	if err := l.store.Remove(ctx, storageKey); err != nil {
		return err
	}
	metrics.UpdatePostsTotal(0)
	return nil
}

func (l *Ledger) save(ctx context.Context, posts []model.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal posts: %w", err)
	}
	return l.store.Set(ctx, storageKey, string(data))
}
