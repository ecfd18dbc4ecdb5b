package community

import "gorm.io/gorm"

// Scoped returns a GORM scope that filters by community_id.
func Scoped(communityID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("community_id = ?", communityID)
	}
}
