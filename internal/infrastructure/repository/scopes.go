package repository

import (
	"github.com/sangkips/mi-inventory-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies offset and limit from params after clamping them.
func Paginate(params *pagination.Params) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.Default()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// OrderedLines preloads sale lines in the order they were rung up.
func OrderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
