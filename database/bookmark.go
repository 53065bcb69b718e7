package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

func CreateBookmark(ctx context.Context, name, path string) error {
	tx, err := conn(ctx)
	if err != nil {
		return err
	}
	if _, err := GetBookmark(ctx, name); err == nil {
		return fmt.Errorf("%w: %s", ErrBookmarkExists, name)
	}
	return tx.Create(&Bookmark{Name: name, Path: path}).Error
}

func GetBookmark(ctx context.Context, name string) (*Bookmark, error) {
	tx, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	bm := &Bookmark{}
	if err := tx.Where("name = ?", name).First(bm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBookmarkNotFound, name)
		}
		return nil, err
	}
	return bm, nil
}

func GetAllBookmarks(ctx context.Context) ([]Bookmark, error) {
	tx, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	var bookmarks []Bookmark
	err = tx.Order("name").Find(&bookmarks).Error
	return bookmarks, err
}

func DeleteBookmark(ctx context.Context, name string) error {
	tx, err := conn(ctx)
	if err != nil {
		return err
	}
	res := tx.Unscoped().Where("name = ?", name).Delete(&Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, name)
	}
	return nil
}
