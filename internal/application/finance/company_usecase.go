package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CompanyUseCase gestiona el registro único de la empresa emisora.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// GetCompany devuelve los datos de la empresa o ErrNotFound si aún no se
// configuraron.
func (uc *CompanyUseCase) GetCompany(ctx context.Context) (*entity.Company, error) {
	company, err := uc.companyRepo.Get()
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

// SaveCompany crea o reemplaza los datos de la empresa.
func (uc *CompanyUseCase) SaveCompany(ctx context.Context, in dto.CompanyRequest) (*entity.Company, error) {
	company, err := uc.companyRepo.Get()
	if err != nil {
		return nil, err
	}
	if company == nil {
		company = &entity.Company{ID: uuid.New().String()}
	}
	company.Name = in.Name
	company.TradeName = in.TradeName
	company.Document = in.Document
	company.Email = in.Email
	company.Phone = in.Phone
	company.Address = in.Address
	company.City = in.City
	company.State = in.State
	company.Zipcode = in.Zipcode
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Upsert(company); err != nil {
		return nil, err
	}
	return company, nil
}
