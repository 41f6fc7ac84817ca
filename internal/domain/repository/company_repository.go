package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company
// (registro único de la empresa emisora).
type CompanyRepository interface {
	Get() (*entity.Company, error)
	Upsert(company *entity.Company) error
}
