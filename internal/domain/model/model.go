// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Team is one of the two fixed affiliations a user and a post belong to.
type Team string

// Canonical team values.
const (
	TeamCats Team = "cats"
	TeamDogs Team = "dogs"
)

// Valid reports whether t is one of the two canonical values.
func (t Team) Valid() bool {
	return t == TeamCats || t == TeamDogs
}

// ParseTeam normalizes a stored or wire team string to a canonical value.
// Singular and case variants ("cat", "DOGS") appear across data sources and
// are accepted; anything else reads as unset.
func ParseTeam(s string) (Team, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cats", "cat":
		return TeamCats, true
	case "dogs", "dog":
		return TeamDogs, true
	default:
		return "", false
	}
}

// Post is a single feed entry. Likes only ever change through the like
// operation; CreatedAt is set once and drives tie-breaking and time-window
// filtering.
type Post struct {
	ID        string    `json:"id"`
	Team      Team      `json:"team"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	ImageURL  *string   `json:"imageURL"`
}

// Profile is the per-user display profile.
type Profile struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	PhotoURI *string `json:"photoUri"`
}

// DailyVote is the one-per-user-per-day vote record. Date is the calendar
// day key (YYYY-MM-DD); a record whose date is not today is stale and reads
// as "no vote today" without being deleted.
type DailyVote struct {
	Date   string `json:"date"`
	PostID string `json:"postId"`
}

// Winner is a closed-period archive entry. Entries are never mutated after
// creation, only prepended to the log.
type Winner struct {
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	PostID       string    `json:"postId"`
	Team         Team      `json:"team"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	LikesAtClose int       `json:"likesAtClose"`
	ImageURL     *string   `json:"imageURL"`
}
