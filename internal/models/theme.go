package models

import "time"

// Theme groups the categories that apply to content tagged with it.
type Theme struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	CoverImage    string                 `json:"coverImage"`
	CategoriesIDs []Ref[CategorySummary] `json:"categoriesIds"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     *time.Time             `json:"updatedAt,omitempty"`
	DeletedAt     *time.Time             `json:"deletedAt,omitempty"`
}

// ThemeSummary is the embedded form of a theme inside resolved content.
type ThemeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
}

func (t Theme) Summary() ThemeSummary {
	return ThemeSummary{ID: t.ID, Name: t.Name, Description: t.Description, CoverImage: t.CoverImage}
}

type NewTheme struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	CoverImage    string   `json:"coverImage" validate:"required"`
	CategoriesIDs []string `json:"categoriesIds"`
}

type ThemePatch struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CoverImage    *string   `json:"coverImage,omitempty"`
	CategoriesIDs *[]string `json:"categoriesIds,omitempty"`
}
