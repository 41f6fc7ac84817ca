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

// CategoryUseCase gestiona las categorías del catálogo.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// CreateCategory crea una categoría. El nombre es único.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, in dto.CategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory obtiene una categoría por ID.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

// UpdateCategory actualiza nombre y descripción.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, id string, in dto.CategoryRequest) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	category.Description = in.Description
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory elimina una categoría sin productos asociados.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

// ListCategories lista categorías con búsqueda por nombre.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	return uc.categoryRepo.List(search, limit, offset)
}
