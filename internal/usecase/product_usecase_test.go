package usecase_test

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks (Product向け：衝突回避)
// =====================

type ProdProductRepoMock struct{ mock.Mock }

func (m *ProdProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProdProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProdTitleRepoMock struct{ mock.Mock }

func (m *ProdTitleRepoMock) FindByID(ctx context.Context, id int64) (model.ProductTitle, error) {
	args := m.Called(ctx, id)
	tl, _ := args.Get(0).(model.ProductTitle)
	return tl, args.Error(1)
}

func (m *ProdTitleRepoMock) FindByName(ctx context.Context, name string) (model.ProductTitle, error) {
	args := m.Called(ctx, name)
	tl, _ := args.Get(0).(model.ProductTitle)
	return tl, args.Error(1)
}

func (m *ProdTitleRepoMock) Create(ctx context.Context, tl model.ProductTitle) (model.ProductTitle, error) {
	args := m.Called(ctx, tl)
	created, _ := args.Get(0).(model.ProductTitle)
	return created, args.Error(1)
}

type ProdCategoryRepoMock struct{ mock.Mock }

func (m *ProdCategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *ProdCategoryRepoMock) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *ProdCategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

type ProdManufacturerRepoMock struct{ mock.Mock }

func (m *ProdManufacturerRepoMock) List(ctx context.Context) ([]model.Manufacturer, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Manufacturer)
	return items, args.Error(1)
}

func (m *ProdManufacturerRepoMock) FindByName(ctx context.Context, name string) (model.Manufacturer, error) {
	args := m.Called(ctx, name)
	mf, _ := args.Get(0).(model.Manufacturer)
	return mf, args.Error(1)
}

func (m *ProdManufacturerRepoMock) Create(ctx context.Context, mf model.Manufacturer) (model.Manufacturer, error) {
	args := m.Called(ctx, mf)
	created, _ := args.Get(0).(model.Manufacturer)
	return created, args.Error(1)
}

type productMocks struct {
	products      *ProdProductRepoMock
	titles        *ProdTitleRepoMock
	categories    *ProdCategoryRepoMock
	manufacturers *ProdManufacturerRepoMock
	audit         *AdminAuditRepoMock
}

func newProductUsecase() (*usecase.ProductUsecase, productMocks) {
	m := productMocks{
		products:      new(ProdProductRepoMock),
		titles:        new(ProdTitleRepoMock),
		categories:    new(ProdCategoryRepoMock),
		manufacturers: new(ProdManufacturerRepoMock),
		audit:         new(AdminAuditRepoMock),
	}
	catalog := usecase.NewCatalogUsecase(m.categories, m.manufacturers, m.titles)
	return usecase.NewProductUsecase(m.products, m.titles, catalog, m.audit), m
}

// =====================
// Public: List / Detail
// =====================

func TestProductUsecase_ListPublicProducts_InvalidPage(t *testing.T) {
	uc, _ := newProductUsecase()

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	assertErrContains(t, err, "invalid page")
}

func TestProductUsecase_ListPublicProducts_InvalidLimit(t *testing.T) {
	uc, _ := newProductUsecase()

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertErrContains(t, err, "invalid limit")
}

func TestProductUsecase_ListPublicProducts_MinOverMax(t *testing.T) {
	uc, _ := newProductUsecase()

	minP := int64(500)
	maxP := int64(100)
	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{
		Page: 1, Limit: 20, MinPrice: &minP, MaxPrice: &maxP,
	})
	assertErrContains(t, err, "min_price must be <= max_price")
}

func TestProductUsecase_ListPublicProducts_Success(t *testing.T) {
	uc, m := newProductUsecase()

	q := repo.ProductListQuery{Page: 1, Limit: 20, Q: "coffee", Sort: "price_asc"}
	m.products.On("ListPublic", mock.Anything, q).Return([]model.Product{
		{ID: 1, TitleID: 11, UnitPrice: 599, IsActive: true},
	}, int64(1), nil)
	m.titles.On("FindByID", mock.Anything, int64(11)).
		Return(model.ProductTitle{ID: 11, Name: "Drip Coffee"}, nil)

	out, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{
		Page: 1, Limit: 20, Q: "coffee", Sort: "price_asc",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)

	if assert.Equal(t, 1, len(out.Items)) {
		assert.Equal(t, "Drip Coffee", out.Items[0].Title)
		assert.Equal(t, int64(599), out.Items[0].UnitPrice)
	}

	m.products.AssertExpectations(t)
}

func TestProductUsecase_GetProductDetail_InactiveIsHidden(t *testing.T) {
	uc, m := newProductUsecase()

	m.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, TitleID: 11, IsActive: false}, nil)

	_, err := uc.GetProductDetail(context.Background(), 1)
	assertErrContains(t, err, "not found")
}

func TestProductUsecase_GetProductDetail_MissingTitleKeepsProductVisible(t *testing.T) {
	uc, m := newProductUsecase()

	m.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, TitleID: 11, UnitPrice: 100, IsActive: true}, nil)
	m.titles.On("FindByID", mock.Anything, int64(11)).
		Return(model.ProductTitle{}, repo.ErrNotFound)

	out, err := uc.GetProductDetail(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "", out.Title)
	assert.Equal(t, int64(100), out.UnitPrice)
}

// =====================
// Admin CRUD
// =====================

func TestProductUsecase_AdminCreateProduct_Success(t *testing.T) {
	uc, m := newProductUsecase()
	adminID := int64(1)

	m.categories.On("FindByName", mock.Anything, "Beverages").
		Return(model.Category{ID: 3, Name: "Beverages"}, nil)
	m.titles.On("FindByName", mock.Anything, "Drip Coffee").
		Return(model.ProductTitle{ID: 11, Name: "Drip Coffee", CategoryID: 3}, nil)
	m.manufacturers.On("FindByName", mock.Anything, "Acme").
		Return(model.Manufacturer{ID: 4, Name: "Acme"}, nil)

	m.products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.TitleID == int64(11) && p.UnitPrice == int64(599) && p.IsActive
	})).Return(model.Product{ID: 9, TitleID: 11, UnitPrice: 599, IsActive: true}, nil)

	m.audit.On("Create", mock.Anything, mock.MatchedBy(func(log model.AuditLog) bool {
		return log.Action == model.AuditActionCreateProduct &&
			log.ResourceType == model.AuditResourceProduct &&
			log.ResourceID == int64(9)
	})).Return(nil)

	out, err := uc.AdminCreateProduct(context.Background(), adminID, usecase.AdminProductInput{
		Title:        "Drip Coffee",
		Category:     "Beverages",
		Manufacturer: "Acme",
		UnitPrice:    599,
		IsActive:     true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(9), out.ID)
	assert.Equal(t, "Drip Coffee", out.Title)

	m.products.AssertExpectations(t)
	m.audit.AssertExpectations(t)
}

func TestProductUsecase_AdminCreateProduct_TitleRequired(t *testing.T) {
	uc, m := newProductUsecase()

	_, err := uc.AdminCreateProduct(context.Background(), 1, usecase.AdminProductInput{
		Category:  "Beverages",
		UnitPrice: 599,
	})
	assertErrContains(t, err, "title is required")

	m.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_AdminCreateProduct_NegativePriceRejected(t *testing.T) {
	uc, _ := newProductUsecase()

	_, err := uc.AdminCreateProduct(context.Background(), 1, usecase.AdminProductInput{
		Title:     "Drip Coffee",
		Category:  "Beverages",
		UnitPrice: -1,
	})
	assertErrContains(t, err, "unit_price must be >= 0")
}

func TestProductUsecase_AdminDeleteProduct_SoftDeletesAndAudits(t *testing.T) {
	uc, m := newProductUsecase()

	m.products.On("FindByID", mock.Anything, int64(9)).
		Return(model.Product{ID: 9, TitleID: 11, IsActive: true}, nil)
	m.products.On("SoftDelete", mock.Anything, int64(9)).Return(nil)
	m.audit.On("Create", mock.Anything, mock.MatchedBy(func(log model.AuditLog) bool {
		return log.Action == model.AuditActionDeleteProduct && log.AfterJSON == ""
	})).Return(nil)

	err := uc.AdminDeleteProduct(context.Background(), 1, 9)
	assert.NoError(t, err)

	m.products.AssertExpectations(t)
	m.audit.AssertExpectations(t)
}

func TestProductUsecase_AdminDeleteProduct_NotFound(t *testing.T) {
	uc, m := newProductUsecase()

	m.products.On("FindByID", mock.Anything, int64(404)).
		Return(model.Product{}, repo.ErrNotFound)

	err := uc.AdminDeleteProduct(context.Background(), 1, 404)
	assertErrContains(t, err, "not found")

	m.products.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

// =====================
// Catalog: 名前解決
// =====================

func TestCatalogUsecase_ResolveTitle_CreatesMissingCategoryAndTitle(t *testing.T) {
	_, m := newProductUsecase()
	catalog := usecase.NewCatalogUsecase(m.categories, m.manufacturers, m.titles)

	m.categories.On("FindByName", mock.Anything, "Beverages").
		Return(model.Category{}, repo.ErrNotFound)
	m.categories.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == "Beverages"
	})).Return(model.Category{ID: 3, Name: "Beverages"}, nil)

	m.titles.On("FindByName", mock.Anything, "Drip Coffee").
		Return(model.ProductTitle{}, repo.ErrNotFound)
	m.titles.On("Create", mock.Anything, mock.MatchedBy(func(tl model.ProductTitle) bool {
		return tl.Name == "Drip Coffee" && tl.CategoryID == int64(3)
	})).Return(model.ProductTitle{ID: 11, Name: "Drip Coffee", CategoryID: 3}, nil)

	title, err := catalog.ResolveTitle(context.Background(), "Drip Coffee", "Beverages")
	assert.NoError(t, err)
	assert.Equal(t, int64(11), title.ID)

	m.categories.AssertExpectations(t)
	m.titles.AssertExpectations(t)
}

func TestCatalogUsecase_ResolveManufacturer_BlankMeansNone(t *testing.T) {
	_, m := newProductUsecase()
	catalog := usecase.NewCatalogUsecase(m.categories, m.manufacturers, m.titles)

	id, err := catalog.ResolveManufacturer(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, id)

	m.manufacturers.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_ResolveManufacturer_CreatesWhenMissing(t *testing.T) {
	_, m := newProductUsecase()
	catalog := usecase.NewCatalogUsecase(m.categories, m.manufacturers, m.titles)

	m.manufacturers.On("FindByName", mock.Anything, "Acme").
		Return(model.Manufacturer{}, repo.ErrNotFound)
	m.manufacturers.On("Create", mock.Anything, mock.MatchedBy(func(mf model.Manufacturer) bool {
		return mf.Name == "Acme"
	})).Return(model.Manufacturer{ID: 4, Name: "Acme"}, nil)

	id, err := catalog.ResolveManufacturer(context.Background(), "Acme")
	assert.NoError(t, err)
	if assert.NotNil(t, id) {
		assert.Equal(t, int64(4), *id)
	}

	m.manufacturers.AssertExpectations(t)
}
