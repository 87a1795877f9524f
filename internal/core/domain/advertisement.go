package domain

import "time"

// Advertisement is a classified ad. UserID is nil for rows whose owner was
// deleted or that predate ownership tracking.
type Advertisement struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Author      string    `json:"author" db:"author"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
}

// OwnedBy reports whether userID owns the advertisement.
func (a *Advertisement) OwnedBy(userID int64) bool {
	return a.UserID != nil && *a.UserID == userID
}

// AdvertisementPatch carries a partial update. Only non-nil fields are applied.
type AdvertisementPatch struct {
	Title       *string
	Description *string
	Price       *int64
	Author      *string
}

// Apply merges the set fields of p into a.
func (p AdvertisementPatch) Apply(a *Advertisement) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
}

// AdvertisementFilter holds search criteria. Text fields match as
// case-insensitive substrings; Price matches exactly. Empty strings and a nil
// Price are not applied. All applied criteria are AND-combined.
type AdvertisementFilter struct {
	Title       string
	Description string
	Price       *int64
	Author      string
}

// Empty reports whether no criterion is set.
func (f AdvertisementFilter) Empty() bool {
	return f.Title == "" && f.Description == "" && f.Price == nil && f.Author == ""
}
