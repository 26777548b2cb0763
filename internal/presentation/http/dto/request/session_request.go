package request

type SelectIndustryRequest struct {
	Industry string `json:"industry" binding:"required"`
}

type SetCompanyNameRequest struct {
	CompanyName string `json:"company_name"`
}

// SelectDepartmentRequest picks the working department. A department that
// omits customer_facing is treated as customer-facing.
type SelectDepartmentRequest struct {
	Name           string `json:"name"`
	CustomerFacing *bool  `json:"customer_facing"`
}
