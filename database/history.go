package database

import (
	"context"

	"github.com/rs/xid"
)

// AddSearchRecord stores rec and keeps only the newest limit records. A
// limit of 0 disables history and nothing is stored.
func AddSearchRecord(ctx context.Context, rec *SearchRecord, limit int) error {
	if limit <= 0 {
		return nil
	}
	tx, err := conn(ctx)
	if err != nil {
		return err
	}
	if rec.RunID == "" {
		rec.RunID = xid.New().String()
	}
	if err := tx.Create(rec).Error; err != nil {
		return err
	}
	newest := tx.Model(&SearchRecord{}).Select("id").Order("id desc").Limit(limit)
	return tx.Unscoped().Where("id NOT IN (?)", newest).Delete(&SearchRecord{}).Error
}

// GetSearchRecords returns up to limit records, newest first. A limit of 0
// returns all of them.
func GetSearchRecords(ctx context.Context, limit int) ([]SearchRecord, error) {
	tx, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	q := tx.Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var records []SearchRecord
	err = q.Find(&records).Error
	return records, err
}

func ClearSearchRecords(ctx context.Context) error {
	tx, err := conn(ctx)
	if err != nil {
		return err
	}
	return tx.Unscoped().Where("1 = 1").Delete(&SearchRecord{}).Error
}
