package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Industry identifies one of the fixed business configurations.
type Industry string

const (
	IndustryHospitality   Industry = "hospitality"
	IndustryRetail        Industry = "retail"
	IndustryHealthcare    Industry = "healthcare"
	IndustryEducation     Industry = "education"
	IndustryOffice        Industry = "office"
	IndustryAgriculture   Industry = "agriculture"
	IndustryManufacturing Industry = "manufacturing"
	IndustryGeneral       Industry = "general"
)

// Industries returns the closed set in display order.
func Industries() []Industry {
	return []Industry{
		IndustryHospitality,
		IndustryRetail,
		IndustryHealthcare,
		IndustryEducation,
		IndustryOffice,
		IndustryAgriculture,
		IndustryManufacturing,
		IndustryGeneral,
	}
}

// ParseIndustry accepts the identifier in any letter case.
func ParseIndustry(s string) (Industry, error) {
	candidate := Industry(strings.ToLower(strings.TrimSpace(s)))
	if !candidate.IsValid() {
		return "", fmt.Errorf("unknown industry %q", s)
	}
	return candidate, nil
}

func (i Industry) IsValid() bool {
	switch i {
	case IndustryHospitality, IndustryRetail, IndustryHealthcare, IndustryEducation,
		IndustryOffice, IndustryAgriculture, IndustryManufacturing, IndustryGeneral:
		return true
	}
	return false
}

// DisplayName is the capitalised label, e.g. "Hospitality".
func (i Industry) DisplayName() string {
	if i == "" {
		return "General"
	}
	return strings.ToUpper(string(i[:1])) + string(i[1:])
}

func (i *Industry) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseIndustry(str)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
