package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CatalogUsecase はカテゴリ・メーカー・商品名の参照データを扱う。
// 「名前で探して、無ければ作る」が基本動作。
type CatalogUsecase struct {
	categoryRepo     repo.CategoryRepository
	manufacturerRepo repo.ManufacturerRepository
	titleRepo        repo.ProductTitleRepository
}

func NewCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	manufacturerRepo repo.ManufacturerRepository,
	titleRepo repo.ProductTitleRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		categoryRepo:     categoryRepo,
		manufacturerRepo: manufacturerRepo,
		titleRepo:        titleRepo,
	}
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CatalogUsecase) ListManufacturers(ctx context.Context) ([]model.Manufacturer, error) {
	items, err := u.manufacturerRepo.List(ctx)
	if err != nil {
		return []model.Manufacturer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// ResolveTitle は商品名をカテゴリ込みで解決する。カテゴリも名前で解決し、無ければ作る。
func (u *CatalogUsecase) ResolveTitle(ctx context.Context, titleName string, categoryName string) (model.ProductTitle, error) {
	titleName = strings.TrimSpace(titleName)
	categoryName = strings.TrimSpace(categoryName)
	if titleName == "" {
		return model.ProductTitle{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if categoryName == "" {
		return model.ProductTitle{}, NewHTTPError(http.StatusBadRequest, "category is required")
	}

	category, err := u.ensureCategory(ctx, categoryName)
	if err != nil {
		return model.ProductTitle{}, err
	}

	title, err := u.titleRepo.FindByName(ctx, titleName)
	if errors.Is(err, repo.ErrNotFound) {
		title, err = u.titleRepo.Create(ctx, model.ProductTitle{
			Name:       titleName,
			CategoryID: category.ID,
		})
	}
	if err != nil {
		return model.ProductTitle{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return title, nil
}

// ResolveManufacturer はメーカー名を解決する。空ならメーカー無し（nil）。
func (u *CatalogUsecase) ResolveManufacturer(ctx context.Context, name string) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	m, err := u.manufacturerRepo.FindByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		m, err = u.manufacturerRepo.Create(ctx, model.Manufacturer{Name: name})
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return &m.ID, nil
}

func (u *CatalogUsecase) ensureCategory(ctx context.Context, name string) (model.Category, error) {
	c, err := u.categoryRepo.FindByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		c, err = u.categoryRepo.Create(ctx, model.Category{Name: name})
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}
