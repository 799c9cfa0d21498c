package usecase

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/config"
	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	authmodel "adclad/internal/auth/domain/model"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// PostUsecaseInterface defines the post and comment use cases
type PostUsecaseInterface interface {
	Create(ctx context.Context, principal *authmodel.Principal, req PostRequest) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.Post], error)
	Comment(ctx context.Context, principal *authmodel.Principal, req CommentRequest) (*model.Post, error)
}

// PostUsecase implements PostUsecaseInterface
type PostUsecase struct {
	posts      catalog[model.Post]
	categories catalog[model.Category]
	config     *config.Config
	logger     logger.Logger
	now        func() time.Time
}

// NewPostUsecase creates a new PostUsecase
func NewPostUsecase(posts repository.Store[model.Post], categories repository.Store[model.Category], cfg *config.Config, log logger.Logger) *PostUsecase {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &PostUsecase{
		posts:      newCatalog(posts, "Post"),
		categories: newCatalog(categories, "Category"),
		config:     cfg,
		logger:     log.WithComponent("posts"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// postRefs resolves the author and category of a post
func postRefs() []sharedrepo.Populate {
	return []sharedrepo.Populate{
		{Path: "creator", From: model.UsersCollection, Select: []string{"firstName", "lastName", "email"}},
		{Path: "category", From: model.CategoriesCollection, Select: []string{"name", "imgUrl"}},
	}
}

// Create stores a post in an existing category
func (uc *PostUsecase) Create(ctx context.Context, principal *authmodel.Principal, req PostRequest) (*model.Post, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	category, err := uc.categories.get(ctx, req.Category, nil)
	if err != nil {
		return nil, err
	}
	post := &model.Post{
		Title:    strings.TrimSpace(req.Title),
		ImgURL:   req.ImgURL,
		Category: sharedrepo.NewRef(category.ID),
		Creator:  sharedrepo.NewRef(principal.ID),
		IsActive: true,
	}
	return uc.posts.store.Create(ctx, post)
}

// Get returns one post with its creator and category populated
func (uc *PostUsecase) Get(ctx context.Context, id string) (*model.Post, error) {
	cond, err := uc.posts.byID(id, nil)
	if err != nil {
		return nil, err
	}
	post, err := uc.posts.store.FindOneAndPopulate(ctx, cond, postRefs())
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.NewNotFoundError(uc.posts.resource)
	}
	return post, nil
}

// List pages through posts with references populated and comments left out
func (uc *PostUsecase) List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.Post], error) {
	opts, err := req.Options(uc.config.DefaultPageLimit)
	if err != nil {
		return nil, err
	}
	opts.Populate = postRefs()
	opts.Projection = bson.M{"comments": 0}

	cond := live(nil)
	if req.IsActive != nil {
		cond["isActive"] = *req.IsActive
	}
	if req.SearchText != "" {
		return uc.posts.store.Search(ctx, req.SearchText, cond, opts)
	}
	return uc.posts.store.Paginate(ctx, cond, opts)
}

// Comment appends the caller's comment to a live post
func (uc *PostUsecase) Comment(ctx context.Context, principal *authmodel.Principal, req CommentRequest) (*model.Post, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	comment := model.Comment{
		Comment:   strings.TrimSpace(req.Comment),
		CommentBy: sharedrepo.NewRef(principal.ID),
		Reply:     req.Reply,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return uc.posts.update(ctx, req.PostID, nil, bson.M{"$push": bson.M{"comments": comment}})
}
