package models

// Explorer is the aggregate view served by /api/explorer and pushed on every
// content mutation. Clients replace their whole local view with it.
type Explorer struct {
	Contents   []Content  `json:"contents"`
	Categories []Category `json:"categories"`
	Themes     []Theme    `json:"themes"`
}
