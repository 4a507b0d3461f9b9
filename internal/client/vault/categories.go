package vault

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

type CategorySource interface {
	DirectorLookup
	Categories(ctx context.Context) ([]models.Category, error)
	SaveDirectorCategories(ctx context.Context, directorID string, categoryIDs []string) (*models.CategorySaveResult, error)
}

const (
	loadCategoriesFailed = "Failed to load categories."
	saveCategoriesFailed = "Failed to save your categories."
)

// CategoryFetcher holds the category list and the local selection.
type CategoryFetcher struct {
	base
	data CategorySource

	mu         sync.Mutex
	loading    bool
	categories []models.Category
	selected   []string
}

func NewCategoryFetcher(sessions SessionSource, data CategorySource, alerts Alerter, logger logging.Logger) *CategoryFetcher {
	return &CategoryFetcher{
		base: base{
			sessions:  sessions,
			directors: data,
			alerts:    alerts,
			logger:    logger.With("component", "categories"),
		},
		data: data,
	}
}

func (f *CategoryFetcher) setLoading(v bool) {
	f.mu.Lock()
	f.loading = v
	f.mu.Unlock()
}

func (f *CategoryFetcher) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *CategoryFetcher) Categories() []models.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Category(nil), f.categories...)
}

// Toggle adds id to the selection, or removes it if already selected.
func (f *CategoryFetcher) Toggle(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := slices.Index(f.selected, id); i >= 0 {
		f.selected = slices.Delete(f.selected, i, i+1)
		return
	}
	f.selected = append(f.selected, id)
}

// Selected returns the selected ids in the order they were picked.
func (f *CategoryFetcher) Selected() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.selected)
}

// Load needs a session but no director profile.
func (f *CategoryFetcher) Load(ctx context.Context) error {
	f.setLoading(true)
	defer f.setLoading(false)

	if _, err := f.session(ctx); err != nil {
		f.replace(nil)
		return err
	}

	categories, err := f.data.Categories(ctx)
	if err != nil {
		f.logger.Error(ctx, "categories fetch failed", "error", err)
		f.replace(nil)
		f.alerts.Alert(retryAlert(loadCategoriesFailed))
		return fmt.Errorf("load categories: %w", err)
	}

	f.replace(categories)
	return nil
}

func (f *CategoryFetcher) replace(categories []models.Category) {
	f.mu.Lock()
	f.categories = categories
	f.mu.Unlock()
}

// Save links the selection to the director. It refuses an empty selection
// without touching the backend.
func (f *CategoryFetcher) Save(ctx context.Context) (*models.CategorySaveResult, error) {
	f.setLoading(true)
	defer f.setLoading(false)

	ids := f.Selected()
	if len(ids) == 0 {
		f.alerts.Alert(AlertNoCategory)
		return nil, ErrNoCategory
	}

	director, err := f.director(ctx, saveCategoriesFailed)
	if err != nil {
		return nil, err
	}

	res, err := f.data.SaveDirectorCategories(ctx, director.ID, ids)
	if err != nil {
		f.logger.Error(ctx, "categories save failed", "director_id", director.ID, "error", err)
		f.clearSelection()
		f.alerts.Alert(retryAlert(saveCategoriesFailed))
		return nil, fmt.Errorf("save categories: %w", err)
	}

	f.logger.Info(ctx, "categories saved", "saved", res.SavedCount, "existing", res.ExistingCount)
	return res, nil
}

func (f *CategoryFetcher) clearSelection() {
	f.mu.Lock()
	f.selected = nil
	f.mu.Unlock()
}
