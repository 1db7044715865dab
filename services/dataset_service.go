package services

import (
	"context"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"gorm.io/gorm"
)

const snapshotBatchSize = 1000

// MigrateSnapshot ensures the transactions snapshot table exists. Called by
// the server and the CLIs at startup; the snapshot is the only persisted
// table in this service.
func MigrateSnapshot() error {
	return config.Gorm.AutoMigrate(&models.Transaction{})
}

// CurrentDatasetVersion returns the version stamp of the active snapshot,
// or "" when nothing has been ingested yet. Versions are uuidv7 so the max
// is also the most recent.
func CurrentDatasetVersion(ctx context.Context) (string, error) {
	var version string
	err := config.Gorm.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(MAX(dataset_version), '')").
		Scan(&version).Error
	return version, err
}

// LoadSnapshot reads the full canonical transaction table in chronological
// order. The analytics core treats the returned slice as immutable.
func LoadSnapshot(ctx context.Context) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := config.Gorm.WithContext(ctx).
		Order("invoice_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// ReplaceSnapshot atomically swaps the whole snapshot for freshly normalized
// rows, stamping each with the new dataset version. onBatch is invoked after
// every inserted batch so CLI callers can drive a progress bar; pass nil
// otherwise.
func ReplaceSnapshot(ctx context.Context, rows []models.Transaction, version string, onBatch func(inserted int)) error {
	for i := range rows {
		rows[i].ID = 0
		rows[i].DatasetVersion = version
	}
	return config.Gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transactions").Error; err != nil {
			return err
		}
		for start := 0; start < len(rows); start += snapshotBatchSize {
			end := start + snapshotBatchSize
			if end > len(rows) {
				end = len(rows)
			}
			if err := tx.Create(rows[start:end]).Error; err != nil {
				return err
			}
			if onBatch != nil {
				onBatch(end - start)
			}
		}
		return nil
	})
}
