package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/logger"
)

// CategoryUsecaseInterface defines the category use cases
type CategoryUsecaseInterface interface {
	Create(ctx context.Context, req CategoryRequest) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// CategoryUsecase implements CategoryUsecaseInterface
type CategoryUsecase struct {
	categories catalog[model.Category]
	logger     logger.Logger
}

// NewCategoryUsecase creates a new CategoryUsecase
func NewCategoryUsecase(store repository.Store[model.Category], log logger.Logger) *CategoryUsecase {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &CategoryUsecase{
		categories: newCatalog(store, "Category"),
		logger:     log.WithComponent("categories"),
	}
}

// Create stores a category; names are unique among live categories
func (uc *CategoryUsecase) Create(ctx context.Context, req CategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	existing, err := uc.categories.store.GetOne(ctx, live(bson.M{"name": name}), bson.M{"_id": 1})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Category already exists").WithDetail("name", name)
	}
	return uc.categories.store.Create(ctx, &model.Category{
		Name:     name,
		ImgURL:   req.ImgURL,
		IsActive: true,
	})
}

// List returns every live, active category
func (uc *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	return uc.categories.store.Find(ctx, live(bson.M{"isActive": true}))
}
