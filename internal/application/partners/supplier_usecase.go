package partners

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// SupplierUseCase gestiona los proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// CreateSupplier da de alta un proveedor. El código es único.
func (uc *SupplierUseCase) CreateSupplier(ctx context.Context, in dto.SupplierRequest) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Document:    in.Document,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Zipcode:     in.Zipcode,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Notes:       in.Notes,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if in.Active != nil {
		supplier.Active = *in.Active
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// UpdateSupplier actualiza los datos del proveedor.
func (uc *SupplierUseCase) UpdateSupplier(ctx context.Context, id string, in dto.SupplierRequest) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	supplier.Code = in.Code
	supplier.Name = in.Name
	supplier.Document = in.Document
	supplier.ContactName = in.ContactName
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.Zipcode = in.Zipcode
	supplier.Address = in.Address
	supplier.City = in.City
	supplier.State = in.State
	supplier.Notes = in.Notes
	if in.Active != nil {
		supplier.Active = *in.Active
	}
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier elimina un proveedor.
func (uc *SupplierUseCase) DeleteSupplier(ctx context.Context, id string) error {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(id)
}

// ListSuppliers lista proveedores con búsqueda y filtro de estado.
func (uc *SupplierUseCase) ListSuppliers(ctx context.Context, filter repository.PartnerFilter) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(filter)
}
