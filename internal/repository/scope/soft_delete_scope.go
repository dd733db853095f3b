package scope

import "gorm.io/gorm"

// WithSoftDelete includes soft deleted records, turning a Delete into a
// permanent purge.
func WithSoftDelete(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
