package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// ProductUseCase gestiona el catálogo de productos. No toca CurrentStock:
// el stock solo se mueve vía el libro de movimientos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// CreateProduct da de alta un producto con stock inicial cero. El código
// debe ser único.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	existing, err := uc.productRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	unit := in.Unit
	if unit == "" {
		unit = entity.UnitUnidad
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		Unit:          unit,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		Location:      in.Location,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct obtiene un producto por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// UpdateProduct actualiza los datos del catálogo. Código y CurrentStock son
// inmutables por esta vía.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	product.Name = in.Name
	product.Description = in.Description
	product.CategoryID = in.CategoryID
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	product.PurchasePrice = in.PurchasePrice
	product.SalePrice = in.SalePrice
	product.MinStock = in.MinStock
	product.MaxStock = in.MaxStock
	product.Location = in.Location
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct elimina un producto. Falla con ErrConflict si tiene
// movimientos, costos o ventas asociados (FK RESTRICT).
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// ListProducts lista productos con filtros de búsqueda, categoría y estado.
func (uc *ProductUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return uc.productRepo.List(filter)
}

// ListLowStock devuelve los productos con stock por debajo del mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.productRepo.ListLowStock(limit)
}
