package entity

import (
	"encoding/json"
	"strings"

	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
)

// DefaultCompanyName is shown until the user picks an industry or renames
// the company.
const DefaultCompanyName = "Mi-Inventory Pro"

// Department is the unit of the business the user is operating in.
type Department struct {
	Name           string `json:"name"`
	CustomerFacing bool   `json:"customer_facing"`
}

// AppState holds the session-wide view settings. It is owned by a single
// session and passed explicitly to whatever needs it.
type AppState struct {
	sidebarOpen  bool
	industry     enum.Industry
	capabilities Capabilities
	companyName  string
	department   *Department
}

// NewAppState returns the defaults for a fresh session.
func NewAppState() *AppState {
	caps, _ := CapabilitiesFor(enum.IndustryGeneral)
	return &AppState{
		sidebarOpen:  true,
		capabilities: caps,
		companyName:  DefaultCompanyName,
	}
}

func (a *AppState) SidebarOpen() bool {
	return a.sidebarOpen
}

// ToggleSidebar flips sidebar visibility and returns the new value.
func (a *AppState) ToggleSidebar() bool {
	a.sidebarOpen = !a.sidebarOpen
	return a.sidebarOpen
}

// Industry is empty until one has been selected.
func (a *AppState) Industry() enum.Industry {
	return a.industry
}

// Capabilities were resolved when the industry was selected.
func (a *AppState) Capabilities() Capabilities {
	return a.capabilities
}

// SelectIndustry switches industry, re-resolves capabilities and renames
// the company to "<Industry> Company". A department chosen for the
// previous industry is dropped.
func (a *AppState) SelectIndustry(industry enum.Industry) error {
	if !industry.IsValid() {
		return apperror.NewFieldError("industry", "is not a supported industry")
	}
	caps, err := CapabilitiesFor(industry)
	if err != nil {
		return err
	}
	a.industry = industry
	a.capabilities = caps
	a.companyName = industry.DisplayName() + " Company"
	a.department = nil
	return nil
}

func (a *AppState) CompanyName() string {
	return a.companyName
}

func (a *AppState) SetCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.NewFieldError("company_name", "is required")
	}
	a.companyName = name
	return nil
}

// Department returns a copy of the selected department, or nil.
func (a *AppState) Department() *Department {
	if a.department == nil {
		return nil
	}
	d := *a.department
	return &d
}

func (a *AppState) SelectDepartment(d Department) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return apperror.NewFieldError("name", "is required")
	}
	a.department = &d
	return nil
}

func (a *AppState) ClearDepartment() {
	a.department = nil
}

// IsCustomerFacing is true when no department is selected.
func (a *AppState) IsCustomerFacing() bool {
	if a.department == nil {
		return true
	}
	return a.department.CustomerFacing
}

// Clone copies the state for read-only use outside the session lock.
func (a *AppState) Clone() *AppState {
	out := *a
	out.department = a.Department()
	return &out
}

func (a *AppState) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		SidebarOpen    bool          `json:"sidebar_open"`
		Industry       enum.Industry `json:"industry"`
		IndustryName   string        `json:"industry_name"`
		CompanyName    string        `json:"company_name"`
		Department     *Department   `json:"department,omitempty"`
		CustomerFacing bool          `json:"customer_facing"`
		Capabilities   Capabilities  `json:"capabilities"`
	}{
		SidebarOpen:    a.sidebarOpen,
		Industry:       a.industry,
		IndustryName:   a.industry.DisplayName(),
		CompanyName:    a.companyName,
		Department:     a.department,
		CustomerFacing: a.IsCustomerFacing(),
		Capabilities:   a.capabilities,
	})
}
