// Package rank holds the pure ranking and filtering helpers for posts.
// The ordering produced by ByLikesThenRecency decides which post becomes a
// period's champion, so its contract is spelled out precisely.
package rank

import (
	"sort"
	"time"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
)

// FilterByTeam returns the posts belonging to team, preserving relative
// order. An empty team means no filter and returns all posts. The input
// slice is never mutated.
func FilterByTeam(posts []model.Post, team model.Team) []model.Post {
	if team == "" {
		out := make([]model.Post, len(posts))
		copy(out, posts)
		return out
	}
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// ByLikesThenRecency returns a new slice sorted by likes descending, with
// ties broken by CreatedAt descending (newer wins). The sort is stable, so
// posts equal on both keys keep their input order. The first element of the
// result is the champion candidate for winner selection.
func ByLikesThenRecency(posts []model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Likes != out[j].Likes {
			return out[i].Likes > out[j].Likes
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Within returns the posts whose CreatedAt falls in the half-open window
// [from, to). The input slice is never mutated.
func Within(posts []model.Post, from, to time.Time) []model.Post {
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			out = append(out, p)
		}
	}
	return out
}
