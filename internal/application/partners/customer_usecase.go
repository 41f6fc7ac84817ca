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

// CustomerUseCase gestiona los clientes.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// CreateCustomer da de alta un cliente. El código es único.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, in dto.CustomerRequest) (*entity.Customer, error) {
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Document:     in.Document,
		Email:        in.Email,
		Phone:        in.Phone,
		Zipcode:      in.Zipcode,
		Address:      in.Address,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
		Notes:        in.Notes,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if in.Active != nil {
		customer.Active = *in.Active
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer obtiene un cliente por ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// UpdateCustomer actualiza los datos del cliente.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, id string, in dto.CustomerRequest) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	customer.Code = in.Code
	customer.Name = in.Name
	customer.Document = in.Document
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Zipcode = in.Zipcode
	customer.Address = in.Address
	customer.Neighborhood = in.Neighborhood
	customer.City = in.City
	customer.State = in.State
	customer.Notes = in.Notes
	if in.Active != nil {
		customer.Active = *in.Active
	}
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer elimina un cliente sin ventas asociadas.
func (uc *CustomerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Delete(id)
}

// ListCustomers lista clientes con búsqueda y filtro de estado.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, filter repository.PartnerFilter) ([]*entity.Customer, error) {
	return uc.customerRepo.List(filter)
}
