package service

import (
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
)

const (
	msgSalesNotEnabled     = "Sales module is not enabled for your industry configuration"
	msgDepartmentNotFacing = "This department is not configured for customer-facing sales"
)

// IndustryService resolves the static industry capability table.
type IndustryService struct{}

// NewIndustryService creates a new industry service
func NewIndustryService() *IndustryService {
	return &IndustryService{}
}

// List returns every industry profile in display order.
func (s *IndustryService) List() []entity.IndustryProfile {
	industries := enum.Industries()
	profiles := make([]entity.IndustryProfile, 0, len(industries))
	for _, ind := range industries {
		p, err := entity.ProfileFor(ind)
		if err != nil {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// Profile looks an industry up by identifier.
func (s *IndustryService) Profile(name string) (*entity.IndustryProfile, error) {
	ind, err := enum.ParseIndustry(name)
	if err != nil {
		return nil, apperror.NewNotFoundError("Industry")
	}
	p, err := entity.ProfileFor(ind)
	if err != nil {
		return nil, apperror.NewNotFoundError("Industry")
	}
	return &p, nil
}

// Capabilities returns the flattened capability flags of an industry.
func (s *IndustryService) Capabilities(name string) (*entity.Capabilities, error) {
	ind, err := enum.ParseIndustry(name)
	if err != nil {
		return nil, apperror.NewNotFoundError("Industry")
	}
	caps, err := entity.CapabilitiesFor(ind)
	if err != nil {
		return nil, apperror.NewNotFoundError("Industry")
	}
	return &caps, nil
}

// CheckSalesAvailable fails with 403 unless the session's industry has
// selling prices and its department is customer-facing.
func CheckSalesAvailable(state *entity.AppState) error {
	if !state.Capabilities().HasSellingPrice {
		return apperror.NewForbiddenError(msgSalesNotEnabled)
	}
	if !state.IsCustomerFacing() {
		return apperror.NewForbiddenError(msgDepartmentNotFacing)
	}
	return nil
}
