package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	titleRepo   repo.ProductTitleRepository
	catalog     *CatalogUsecase
	auditRepo   repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	titleRepo repo.ProductTitleRepository,
	catalog *CatalogUsecase,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		titleRepo:   titleRepo,
		catalog:     catalog,
		auditRepo:   auditRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

type ProductOutput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	IsActive    bool   `json:"is_active"`
}

type ProductListOutput struct {
	Items []ProductOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		out, err := u.toProductOutput(ctx, p)
		if err != nil {
			return ProductListOutput{}, err
		}
		outs = append(outs, out)
	}

	return ProductListOutput{
		Items: outs,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return u.toProductOutput(ctx, p)
}

// 管理者用の入力。カテゴリ・商品名・メーカーは名前で受け取り、無ければ作る。
type AdminProductInput struct {
	Title        string
	Category     string
	Manufacturer string
	Description  string
	UnitPrice    int64
	IsActive     bool
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminID int64, in AdminProductInput) (ProductOutput, error) {
	if adminID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateAdminProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	title, err := u.catalog.ResolveTitle(ctx, in.Title, in.Category)
	if err != nil {
		return ProductOutput{}, err
	}
	manufacturerID, err := u.catalog.ResolveManufacturer(ctx, in.Manufacturer)
	if err != nil {
		return ProductOutput{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		TitleID:        title.ID,
		ManufacturerID: manufacturerID,
		Description:    in.Description,
		UnitPrice:      in.UnitPrice,
		IsActive:       in.IsActive,
	})
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.writeProductAudit(ctx, adminID, model.AuditActionCreateProduct, created.ID, nil, &created); err != nil {
		return ProductOutput{}, err
	}

	return ProductOutput{
		ID:          created.ID,
		Title:       title.Name,
		Description: created.Description,
		UnitPrice:   created.UnitPrice,
		IsActive:    created.IsActive,
	}, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminID int64, productID int64, in AdminProductInput) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateAdminProductInput(in); err != nil {
		return err
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	title, err := u.catalog.ResolveTitle(ctx, in.Title, in.Category)
	if err != nil {
		return err
	}
	manufacturerID, err := u.catalog.ResolveManufacturer(ctx, in.Manufacturer)
	if err != nil {
		return err
	}

	after := before
	after.TitleID = title.ID
	after.ManufacturerID = manufacturerID
	after.Description = in.Description
	after.UnitPrice = in.UnitPrice
	after.IsActive = in.IsActive

	if err := u.productRepo.Update(ctx, after); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.writeProductAudit(ctx, adminID, model.AuditActionUpdateProduct, productID, &before, &after)
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminID int64, productID int64) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.writeProductAudit(ctx, adminID, model.AuditActionDeleteProduct, productID, &before, nil)
}

func validateAdminProductInput(in AdminProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if in.UnitPrice < 0 {
		return NewHTTPError(http.StatusBadRequest, "unit_price must be >= 0")
	}
	return nil
}

func (u *ProductUsecase) toProductOutput(ctx context.Context, p model.Product) (ProductOutput, error) {
	title, err := u.titleRepo.FindByID(ctx, p.TitleID)
	if errors.Is(err, repo.ErrNotFound) {
		//参照切れは名前空欄で返す（商品自体は見せる）
		title = model.ProductTitle{}
	} else if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductOutput{
		ID:          p.ID,
		Title:       title.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		IsActive:    p.IsActive,
	}, nil
}

func (u *ProductUsecase) writeProductAudit(ctx context.Context, adminID int64, action model.AuditAction, productID int64, before *model.Product, after *model.Product) error {
	beforeJSON := ""
	if before != nil {
		b, _ := json.Marshal(before)
		beforeJSON = string(b)
	}
	afterJSON := ""
	if after != nil {
		b, _ := json.Marshal(after)
		afterJSON = string(b)
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
