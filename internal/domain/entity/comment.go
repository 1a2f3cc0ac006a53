package entity

import "time"

// Comment belongs to exactly one post and is deleted with it. UserID is a
// non-owning reference to the author, empty for anonymous comments. Likes
// only ever increases.
type Comment struct {
	ID     int64
	PostID string
	UserID string
	Name   string
	Text   string
	Time   time.Time
	Likes  int
}
