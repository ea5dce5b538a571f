package domain

import "time"

// News statuses.
const (
	NewsDraft     = "draft"
	NewsPublished = "published"
	NewsArchived  = "archived"
)

// NewsItem is an article as the analytics and admin surfaces see it.
type NewsItem struct {
	ID          string
	Slug        string
	Title       string
	Intro       string
	Status      string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
