package models

import "time"

// Content is a titled piece of content tagged with themes and carrying
// per-category values.
type Content struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	ThemesIDs []Ref[ThemeSummary] `json:"themesIds"`
	Values    []ContentValue      `json:"values"`
	UserID    Ref[UserSummary]    `json:"userId"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
	DeletedAt *time.Time          `json:"deletedAt,omitempty"`
}

// ContentValue pairs a category reference with the value entered for it.
type ContentValue struct {
	CategoryID Ref[CategorySummary] `json:"categoryId"`
	Value      string               `json:"value"`
}

// ValueInput is a content value as submitted by clients.
type ValueInput struct {
	CategoryID string `json:"categoryId" validate:"required"`
	Value      string `json:"value"`
}

// NewContent is the create payload. UserID is set from the authenticated caller.
type NewContent struct {
	Title     string       `json:"title" validate:"required"`
	ThemesIDs []string     `json:"themesIds"`
	Values    []ValueInput `json:"values" validate:"dive"`
	UserID    string       `json:"-"`
	// CreatedAt backdates imported content; zero means now.
	CreatedAt time.Time `json:"-"`
}

type ContentPatch struct {
	Title     *string       `json:"title,omitempty"`
	ThemesIDs *[]string     `json:"themesIds,omitempty"`
	Values    *[]ValueInput `json:"values,omitempty" validate:"omitempty,dive"`
	UserID    *string       `json:"-"`
}

// ValuesFromInput converts submitted values to unresolved content values.
func ValuesFromInput(in []ValueInput) []ContentValue {
	values := make([]ContentValue, 0, len(in))
	for _, v := range in {
		values = append(values, ContentValue{CategoryID: RefTo[CategorySummary](v.CategoryID), Value: v.Value})
	}
	return values
}
