package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewAppState_Defaults(t *testing.T) {
	a := entity.NewAppState()

	assert.True(t, a.SidebarOpen())
	assert.Equal(t, enum.Industry(""), a.Industry())
	assert.Equal(t, entity.DefaultCompanyName, a.CompanyName())
	assert.Nil(t, a.Department())
	assert.True(t, a.IsCustomerFacing())
	assert.Equal(t, enum.IndustryGeneral, a.Capabilities().Industry)
	assert.False(t, a.Capabilities().HasTableService)
}

func Test_AppState_ToggleSidebar(t *testing.T) {
	a := entity.NewAppState()
	assert.False(t, a.ToggleSidebar())
	assert.True(t, a.ToggleSidebar())
	assert.True(t, a.SidebarOpen())
}

func Test_AppState_SelectIndustry(t *testing.T) {
	t.Run("resolves_capabilities_and_renames_company", func(t *testing.T) {
		a := entity.NewAppState()
		require.NoError(t, a.SelectDepartment(entity.Department{Name: "Kitchen"}))

		require.NoError(t, a.SelectIndustry(enum.IndustryHospitality))

		assert.Equal(t, enum.IndustryHospitality, a.Industry())
		assert.Equal(t, "Hospitality Company", a.CompanyName())
		assert.True(t, a.Capabilities().HasTableService)
		assert.Nil(t, a.Department())
	})

	t.Run("unknown_industry_leaves_state_alone", func(t *testing.T) {
		a := entity.NewAppState()
		require.NoError(t, a.SelectIndustry(enum.IndustryRetail))

		err := a.SelectIndustry(enum.Industry("mining"))
		assert.True(t, apperror.IsValidationError(err))
		assert.Equal(t, enum.IndustryRetail, a.Industry())
		assert.Equal(t, "Retail Company", a.CompanyName())
	})
}

func Test_AppState_SetCompanyName(t *testing.T) {
	a := entity.NewAppState()
	require.NoError(t, a.SetCompanyName("  Mama Mboga Ltd "))
	assert.Equal(t, "Mama Mboga Ltd", a.CompanyName())

	assert.True(t, apperror.IsValidationError(a.SetCompanyName("   ")))
	assert.Equal(t, "Mama Mboga Ltd", a.CompanyName())
}

func Test_AppState_Department(t *testing.T) {
	t.Run("customer_facing_follows_department", func(t *testing.T) {
		a := entity.NewAppState()
		require.NoError(t, a.SelectDepartment(entity.Department{Name: "Kitchen", CustomerFacing: false}))
		assert.False(t, a.IsCustomerFacing())

		require.NoError(t, a.SelectDepartment(entity.Department{Name: "Restaurant", CustomerFacing: true}))
		assert.True(t, a.IsCustomerFacing())

		a.ClearDepartment()
		assert.Nil(t, a.Department())
		assert.True(t, a.IsCustomerFacing())
	})

	t.Run("blank_name_is_rejected", func(t *testing.T) {
		a := entity.NewAppState()
		assert.True(t, apperror.IsValidationError(a.SelectDepartment(entity.Department{Name: " "})))
		assert.Nil(t, a.Department())
	})

	t.Run("returned_department_is_a_copy", func(t *testing.T) {
		a := entity.NewAppState()
		require.NoError(t, a.SelectDepartment(entity.Department{Name: "Bar", CustomerFacing: true}))
		d := a.Department()
		d.Name = "Changed"
		assert.Equal(t, "Bar", a.Department().Name)
	})
}

func Test_AppState_Clone(t *testing.T) {
	a := entity.NewAppState()
	require.NoError(t, a.SelectDepartment(entity.Department{Name: "Bar"}))

	c := a.Clone()
	c.ToggleSidebar()
	c.ClearDepartment()

	assert.True(t, a.SidebarOpen())
	require.NotNil(t, a.Department())
	assert.Equal(t, "Bar", a.Department().Name)
}

func Test_AppState_MarshalJSON(t *testing.T) {
	a := entity.NewAppState()
	require.NoError(t, a.SelectIndustry(enum.IndustryHealthcare))

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "healthcare", got["industry"])
	assert.Equal(t, "Healthcare Company", got["company_name"])
	assert.Equal(t, true, got["customer_facing"])
	assert.NotContains(t, got, "department")

	caps := got["capabilities"].(map[string]any)
	assert.Equal(t, true, caps["has_patient_tracking"])
}
