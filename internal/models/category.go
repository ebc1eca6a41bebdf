package models

import "time"

// Category is a free-text grouping key with a display label.
type Category struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Label     string     `json:"label"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CategorySummary is the embedded form of a category.
type CategorySummary struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

func (c Category) Summary() CategorySummary {
	return CategorySummary{ID: c.ID, Type: c.Type, Label: c.Label}
}

type NewCategory struct {
	Type  string `json:"type" validate:"required"`
	Label string `json:"label" validate:"required"`
}

type CategoryPatch struct {
	Type  *string `json:"type,omitempty"`
	Label *string `json:"label,omitempty"`
}
