// Package seed loads sample users, categories, themes and contents.
// Sample records reference each other by 1-based position in their list; the
// loader maps positions to the ids the store assigns. Records are matched to
// existing ones by natural key, so a run that failed part way can be repeated.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/rbac"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

//go:embed data/sample.json
var sampleFS embed.FS

// ErrNotEmpty is returned when the store holds records the dataset does not describe.
var ErrNotEmpty = errors.New("store contains records outside the dataset")

// Dataset is a self-contained set of sample records.
type Dataset struct {
	Users      []User               `json:"users"`
	Categories []models.NewCategory `json:"categories"`
	Themes     []Theme              `json:"themes"`
	Contents   []Content            `json:"contents"`
}

type User struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      rbac.Role `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	Categories  []int  `json:"categories"`
}

type Value struct {
	Category int    `json:"category"`
	Value    string `json:"value"`
}

type Content struct {
	Title     string    `json:"title"`
	Themes    []int     `json:"themes"`
	Values    []Value   `json:"values"`
	User      int       `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary counts the records created.
type Summary struct {
	Users, Categories, Themes, Contents int
}

// Services are the entry points the loader writes through, so passwords get hashed.
type Services struct {
	Users      services.UserServiceProvider
	Categories services.CategoryServiceProvider
	Themes     services.ThemeServiceProvider
	Contents   services.ContentServiceProvider
}

func userKey(u User) string                   { return u.Email }
func categoryKey(c models.NewCategory) string { return c.Type + "/" + c.Label }
func themeKey(t Theme) string                 { return t.Name }
func contentKey(c Content) string             { return c.Title }

// Sample returns the embedded dataset.
func Sample() (*Dataset, error) {
	b, err := sampleFS.ReadFile("data/sample.json")
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a dataset and checks every position refers to an existing record.
func Parse(b []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) validate() error {
	for i, u := range ds.Users {
		if !u.Role.Valid() {
			return fmt.Errorf("user %d: unknown role %q", i+1, u.Role)
		}
	}
	if err := uniqueKeys("user", ds.Users, userKey); err != nil {
		return err
	}
	if err := uniqueKeys("category", ds.Categories, categoryKey); err != nil {
		return err
	}
	if err := uniqueKeys("theme", ds.Themes, themeKey); err != nil {
		return err
	}
	if err := uniqueKeys("content", ds.Contents, contentKey); err != nil {
		return err
	}
	for i, t := range ds.Themes {
		for _, pos := range t.Categories {
			if !inRange(pos, len(ds.Categories)) {
				return fmt.Errorf("theme %d: category position %d out of range", i+1, pos)
			}
		}
	}
	for i, c := range ds.Contents {
		if !inRange(c.User, len(ds.Users)) {
			return fmt.Errorf("content %d: user position %d out of range", i+1, c.User)
		}
		for _, pos := range c.Themes {
			if !inRange(pos, len(ds.Themes)) {
				return fmt.Errorf("content %d: theme position %d out of range", i+1, pos)
			}
		}
		for _, v := range c.Values {
			if !inRange(v.Category, len(ds.Categories)) {
				return fmt.Errorf("content %d: category position %d out of range", i+1, v.Category)
			}
		}
	}
	return nil
}

func uniqueKeys[T any](kind string, items []T, key func(T) string) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		k := key(item)
		if first, ok := seen[k]; ok {
			return fmt.Errorf("%s %d: duplicates %s %d (%q)", kind, i+1, kind, first, k)
		}
		seen[k] = i + 1
	}
	return nil
}

func inRange(pos, n int) bool {
	return pos >= 1 && pos <= n
}

func pick(ids []string, positions []int) []string {
	picked := make([]string, 0, len(positions))
	for _, pos := range positions {
		picked = append(picked, ids[pos-1])
	}
	return picked
}

// existing maps the natural key of every active record to its id.
type existing struct {
	users, categories, themes, contents map[string]string
}

func loadExisting(ctx context.Context, svc Services) (*existing, error) {
	var (
		users      []models.User
		categories []models.Category
		themes     []models.Theme
		contents   []models.Content
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = svc.Users.GetAllUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = svc.Categories.GetAllCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		themes, err = svc.Themes.GetAllThemes(gctx)
		return err
	})
	g.Go(func() (err error) {
		contents, err = svc.Contents.GetAllContents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load existing records: %w", err)
	}

	ex := &existing{
		users:      make(map[string]string, len(users)),
		categories: make(map[string]string, len(categories)),
		themes:     make(map[string]string, len(themes)),
		contents:   make(map[string]string, len(contents)),
	}
	for _, u := range users {
		ex.users[u.Email] = u.ID
	}
	for _, c := range categories {
		ex.categories[categoryKey(models.NewCategory{Type: c.Type, Label: c.Label})] = c.ID
	}
	for _, t := range themes {
		ex.themes[t.Name] = t.ID
	}
	for _, c := range contents {
		ex.contents[c.Title] = c.ID
	}
	return ex, nil
}

// foreign fails when the store holds a record no dataset entry matches.
func (ex *existing) foreign(ds *Dataset) error {
	if err := outside("user", ex.users, ds.Users, userKey); err != nil {
		return err
	}
	if err := outside("category", ex.categories, ds.Categories, categoryKey); err != nil {
		return err
	}
	if err := outside("theme", ex.themes, ds.Themes, themeKey); err != nil {
		return err
	}
	return outside("content", ex.contents, ds.Contents, contentKey)
}

func outside[T any](kind string, found map[string]string, items []T, key func(T) string) error {
	wanted := make(map[string]struct{}, len(items))
	for _, item := range items {
		wanted[key(item)] = struct{}{}
	}
	for k := range found {
		if _, ok := wanted[k]; !ok {
			return fmt.Errorf("%w: %s %q", ErrNotEmpty, kind, k)
		}
	}
	return nil
}

// Run loads ds into the store, creating only the records not already present.
// Records of one kind are created concurrently.
func Run(ctx context.Context, svc Services, ds *Dataset) (Summary, error) {
	ex, err := loadExisting(ctx, svc)
	if err != nil {
		return Summary{}, err
	}
	if err := ex.foreign(ds); err != nil {
		return Summary{}, err
	}

	var summary Summary
	userIDs, created, err := ensureAll(ctx, "user", ds.Users, userKey, ex.users, func(ctx context.Context, u User) (string, error) {
		user, err := svc.Users.CreateUser(ctx, models.NewUser{
			Username:  u.Username,
			Email:     u.Email,
			Password:  u.Password,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
		if err != nil {
			return "", err
		}
		return user.ID, nil
	})
	if err != nil {
		return summary, err
	}
	summary.Users = created

	categoryIDs, created, err := ensureAll(ctx, "category", ds.Categories, categoryKey, ex.categories, func(ctx context.Context, c models.NewCategory) (string, error) {
		category, err := svc.Categories.CreateCategory(ctx, c)
		if err != nil {
			return "", err
		}
		return category.ID, nil
	})
	if err != nil {
		return summary, err
	}
	summary.Categories = created

	themeIDs, created, err := ensureAll(ctx, "theme", ds.Themes, themeKey, ex.themes, func(ctx context.Context, t Theme) (string, error) {
		theme, err := svc.Themes.CreateTheme(ctx, models.NewTheme{
			Name:          t.Name,
			Description:   t.Description,
			CoverImage:    t.CoverImage,
			CategoriesIDs: pick(categoryIDs, t.Categories),
		})
		if err != nil {
			return "", err
		}
		return theme.ID, nil
	})
	if err != nil {
		return summary, err
	}
	summary.Themes = created

	_, created, err = ensureAll(ctx, "content", ds.Contents, contentKey, ex.contents, func(ctx context.Context, c Content) (string, error) {
		values := make([]models.ValueInput, 0, len(c.Values))
		for _, v := range c.Values {
			values = append(values, models.ValueInput{CategoryID: categoryIDs[v.Category-1], Value: v.Value})
		}
		content, err := svc.Contents.CreateContent(ctx, models.NewContent{
			Title:     c.Title,
			ThemesIDs: pick(themeIDs, c.Themes),
			Values:    values,
			UserID:    userIDs[c.User-1],
			CreatedAt: c.CreatedAt,
		})
		if err != nil {
			return "", err
		}
		return content.ID, nil
	})
	if err != nil {
		return summary, err
	}
	summary.Contents = created

	if summary == (Summary{}) {
		log.Info().Msg("Database already seeded")
		return summary, nil
	}
	log.Info().
		Int("users", summary.Users).
		Int("categories", summary.Categories).
		Int("themes", summary.Themes).
		Int("contents", summary.Contents).
		Msg("Database seeded successfully")
	return summary, nil
}

// ensureAll returns an id per item in input order, reusing found ids and
// creating the rest. It also reports how many records it created.
func ensureAll[T any](ctx context.Context, kind string, items []T, key func(T) string, found map[string]string,
	create func(context.Context, T) (string, error)) ([]string, int, error) {
	ids := make([]string, len(items))
	created := 0
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, item := range items {
		if id, ok := found[key(item)]; ok {
			ids[i] = id
			continue
		}
		created++
		g.Go(func() error {
			id, err := create(ctx, item)
			if err != nil {
				return fmt.Errorf("create %s %d: %w", kind, i+1, err)
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return ids, created, nil
}
