package database

import (
	"time"

	"gorm.io/gorm"
)

type Bookmark struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
	Path string `gorm:"not null"`
}

// SearchRecord is one finished search run.
type SearchRecord struct {
	gorm.Model
	RunID   string `gorm:"uniqueIndex;not null"`
	Query   string
	Root    string
	Matches int
	Skipped int
	Elapsed time.Duration
}
