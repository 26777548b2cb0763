package entity

import (
	"fmt"

	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
)

// WorkflowType describes the operating style of an industry.
type WorkflowType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FeatureToggle is one row of an industry's feature list.
type FeatureToggle struct {
	Feature enum.Feature `json:"feature"`
	Enabled bool         `json:"enabled"`
}

// IndustryProfile is the static configuration of one industry.
type IndustryProfile struct {
	Industry            enum.Industry   `json:"industry"`
	Name                string          `json:"name"`
	InventoryCategories []string        `json:"inventory_categories"`
	DefaultDepartments  []string        `json:"default_departments"`
	UnitsOfMeasurement  []string        `json:"units_of_measurement"`
	UserRoles           []string        `json:"user_roles"`
	Features            []FeatureToggle `json:"enabled_features"`
	Workflow            WorkflowType    `json:"workflow_type"`
}

// Enabled reports whether the profile switches f on.
func (p IndustryProfile) Enabled(f enum.Feature) bool {
	for _, t := range p.Features {
		if t.Feature == f {
			return t.Enabled
		}
	}
	return false
}

// Capabilities is the flattened feature view consumed by the sale and
// inventory screens.
type Capabilities struct {
	Industry           enum.Industry `json:"industry"`
	HasSellingPrice    bool          `json:"has_selling_price"`
	HasExpiryTracking  bool          `json:"has_expiry_tracking"`
	HasBatchTracking   bool          `json:"has_batch_tracking"`
	HasTableService    bool          `json:"has_table_service"`
	HasBarcodeScanning bool          `json:"has_barcode_scanning"`
	HasRequisitionFlow bool          `json:"has_requisition_flow"`
	HasPatientTracking bool          `json:"has_patient_tracking"`
	HasBillOfMaterials bool          `json:"has_bill_of_materials"`
	HasAssetTracking   bool          `json:"has_asset_tracking"`
	Categories         []string      `json:"categories"`
	UnitsOfMeasurement []string      `json:"units_of_measurement"`
	Departments        []string      `json:"departments"`
	Roles              []string      `json:"roles"`
	Workflow           WorkflowType  `json:"workflow_type"`
}

var (
	salesWorkflow = WorkflowType{
		Name:        "Sales-Focused Workflow",
		Description: "Optimized for customer-facing sales operations",
	}
	requisitionWorkflow = WorkflowType{
		Name:        "Requisition-Based Workflow",
		Description: "Designed for internal requisition and distribution",
	}
	hybridWorkflow = WorkflowType{
		Name:        "Hybrid Workflow (Sales + Requisition)",
		Description: "Supports both sales and internal requisition workflows",
	}
)

// toggles expands the enabled set into a full, ordered feature list.
func toggles(enabled ...enum.Feature) []FeatureToggle {
	on := make(map[enum.Feature]bool, len(enabled))
	for _, f := range enabled {
		on[f] = true
	}
	out := make([]FeatureToggle, 0, len(enum.Features()))
	for _, f := range enum.Features() {
		out = append(out, FeatureToggle{Feature: f, Enabled: on[f]})
	}
	return out
}

var industryProfiles = map[enum.Industry]IndustryProfile{
	enum.IndustryHospitality: {
		InventoryCategories: []string{"Food Items", "Beverages", "Disposables", "Cleaning Supplies"},
		DefaultDepartments:  []string{"Kitchen", "Bar", "Restaurant", "Housekeeping", "Reception"},
		UnitsOfMeasurement:  []string{"portions", "packs", "litres", "kg", "cartons", "bottles"},
		UserRoles:           []string{"Manager", "Waiter", "Chef", "Bartender", "Cashier"},
		Features: toggles(enum.FeatureExpiryTracking, enum.FeatureBatchTracking, enum.FeatureSellingPrice,
			enum.FeatureTableService, enum.FeatureBarcodeScanning, enum.FeatureRequisitionFlow),
		Workflow: salesWorkflow,
	},
	enum.IndustryRetail: {
		InventoryCategories: []string{"Groceries", "Electronics", "Clothing", "Household Items"},
		DefaultDepartments:  []string{"Sales Floor", "Warehouse", "Cashier", "Customer Service"},
		UnitsOfMeasurement:  []string{"pieces", "packs", "kg", "litres", "cartons", "boxes"},
		UserRoles:           []string{"Store Manager", "Cashier", "Stock Clerk", "Sales Associate"},
		Features: toggles(enum.FeatureExpiryTracking, enum.FeatureBatchTracking, enum.FeatureSellingPrice,
			enum.FeatureBarcodeScanning, enum.FeatureRequisitionFlow, enum.FeatureAssetTracking),
		Workflow: salesWorkflow,
	},
	enum.IndustryHealthcare: {
		InventoryCategories: []string{"Medications", "Medical Supplies", "Equipment", "Consumables"},
		DefaultDepartments:  []string{"Pharmacy", "Ward", "ICU", "Laboratory", "Emergency"},
		UnitsOfMeasurement:  []string{"tablets", "vials", "bottles", "boxes", "units", "ml"},
		UserRoles:           []string{"Pharmacist", "Nurse", "Doctor", "Lab Technician"},
		Features: toggles(enum.FeatureExpiryTracking, enum.FeatureBatchTracking, enum.FeatureSellingPrice,
			enum.FeatureBarcodeScanning, enum.FeatureRequisitionFlow, enum.FeaturePatientTracking,
			enum.FeatureAssetTracking),
		Workflow: requisitionWorkflow,
	},
	enum.IndustryEducation: {
		InventoryCategories: []string{"Stationery", "Equipment", "Books", "Supplies"},
		DefaultDepartments:  []string{"Administration", "Library", "Laboratory", "Maintenance"},
		UnitsOfMeasurement:  []string{"pieces", "packs", "reams", "boxes", "units"},
		UserRoles:           []string{"Administrator", "Teacher", "Librarian", "Maintenance Staff"},
		Features:            toggles(enum.FeatureRequisitionFlow, enum.FeatureAssetTracking),
		Workflow:            requisitionWorkflow,
	},
	enum.IndustryGeneral: {
		InventoryCategories: []string{"Consumables", "Equipment", "Supplies", "Assets"},
		DefaultDepartments:  []string{"Store", "Operations", "Administration"},
		UnitsOfMeasurement:  []string{"pieces", "units", "kg", "litres", "boxes", "packs"},
		UserRoles:           []string{"Manager", "Operator", "Admin", "User"},
		Features: toggles(enum.FeatureExpiryTracking, enum.FeatureBatchTracking, enum.FeatureSellingPrice,
			enum.FeatureBarcodeScanning, enum.FeatureRequisitionFlow, enum.FeatureAssetTracking),
		Workflow: hybridWorkflow,
	},
	enum.IndustryAgriculture: {
		InventoryCategories: []string{"Seeds", "Fertilizers", "Chemicals", "Tools", "Animal Feed"},
		DefaultDepartments:  []string{"Farm Store", "Field Operations", "Livestock", "Processing"},
		UnitsOfMeasurement:  []string{"bags", "litres", "kg", "drums", "sacks", "tonnes"},
		UserRoles:           []string{"Farm Manager", "Field Worker", "Veterinarian", "Store Keeper"},
		Features: toggles(enum.FeatureExpiryTracking, enum.FeatureBatchTracking, enum.FeatureBarcodeScanning,
			enum.FeatureRequisitionFlow, enum.FeatureBillOfMaterials, enum.FeatureAssetTracking),
		Workflow: requisitionWorkflow,
	},
	enum.IndustryManufacturing: {
		InventoryCategories: []string{"Raw Materials", "Tools", "Spare Parts", "Finished Goods"},
		DefaultDepartments:  []string{"Production Floor", "Quality Control", "Maintenance", "Warehouse"},
		UnitsOfMeasurement:  []string{"kg", "sheets", "rolls", "meters", "litres", "pieces"},
		UserRoles:           []string{"Production Manager", "Operator", "Quality Inspector", "Maintenance Tech"},
		Features: toggles(enum.FeatureExpiryTracking, enum.FeatureBatchTracking, enum.FeatureBarcodeScanning,
			enum.FeatureRequisitionFlow, enum.FeatureBillOfMaterials, enum.FeatureAssetTracking),
		Workflow: requisitionWorkflow,
	},
	enum.IndustryOffice: {
		InventoryCategories: []string{"Stationery", "Office Supplies", "Equipment", "Assets"},
		DefaultDepartments:  []string{"Administration", "Human Resources", "IT Support", "Procurement"},
		UnitsOfMeasurement:  []string{"pieces", "packs", "boxes", "units", "reams"},
		UserRoles:           []string{"Office Manager", "Administrator", "IT Staff", "Employee"},
		Features:            toggles(enum.FeatureBarcodeScanning, enum.FeatureRequisitionFlow, enum.FeatureAssetTracking),
		Workflow: WorkflowType{
			Name:        "Requisition-Based Workflow",
			Description: "Designed for internal requisition and efficient office operations",
		},
	},
}

// ProfileFor returns a copy of the static profile for industry.
func ProfileFor(industry enum.Industry) (IndustryProfile, error) {
	p, ok := industryProfiles[industry]
	if !ok {
		return IndustryProfile{}, fmt.Errorf("no profile for industry %q", industry)
	}
	p.Industry = industry
	p.Name = industry.DisplayName()
	p.InventoryCategories = append([]string(nil), p.InventoryCategories...)
	p.DefaultDepartments = append([]string(nil), p.DefaultDepartments...)
	p.UnitsOfMeasurement = append([]string(nil), p.UnitsOfMeasurement...)
	p.UserRoles = append([]string(nil), p.UserRoles...)
	p.Features = append([]FeatureToggle(nil), p.Features...)
	return p, nil
}

// CapabilitiesFor flattens the profile of industry into capability flags.
// An empty industry resolves as general.
func CapabilitiesFor(industry enum.Industry) (Capabilities, error) {
	if industry == "" {
		industry = enum.IndustryGeneral
	}
	p, err := ProfileFor(industry)
	if err != nil {
		return Capabilities{}, err
	}

	caps := Capabilities{
		Industry:           industry,
		Categories:         p.InventoryCategories,
		UnitsOfMeasurement: p.UnitsOfMeasurement,
		Departments:        p.DefaultDepartments,
		Roles:              p.UserRoles,
		Workflow:           p.Workflow,
	}
	for _, t := range p.Features {
		switch t.Feature {
		case enum.FeatureExpiryTracking:
			caps.HasExpiryTracking = t.Enabled
		case enum.FeatureBatchTracking:
			caps.HasBatchTracking = t.Enabled
		case enum.FeatureSellingPrice:
			caps.HasSellingPrice = t.Enabled
		case enum.FeatureTableService:
			caps.HasTableService = t.Enabled
		case enum.FeatureBarcodeScanning:
			caps.HasBarcodeScanning = t.Enabled
		case enum.FeatureRequisitionFlow:
			caps.HasRequisitionFlow = t.Enabled
		case enum.FeaturePatientTracking:
			caps.HasPatientTracking = t.Enabled
		case enum.FeatureBillOfMaterials:
			caps.HasBillOfMaterials = t.Enabled
		case enum.FeatureAssetTracking:
			caps.HasAssetTracking = t.Enabled
		default:
			panic(fmt.Sprintf("entity: unhandled %v", t.Feature))
		}
	}
	return caps, nil
}
