package database

import (
	"gorm.io/gorm"
)

// MaxPageSize caps the rows a single page may return.
const MaxPageSize = 500

// Paginate applies pagination to a GORM query. Pages start at 1; a
// non-positive page or size leaves the query unpaginated, and sizes above
// MaxPageSize are capped.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || pageSize <= 0 {
			return db
		}
		if pageSize > MaxPageSize {
			pageSize = MaxPageSize
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
