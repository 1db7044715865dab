package analytics_controller

import (
	"context"

	analytics_cache "github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/cache"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/services"
)

// revenueModel is injected at startup; nil when no artifact was loadable.
var revenueModel services.RevenueModel

// InitRevenueModel wires the pre-trained model into the forecast endpoint.
func InitRevenueModel(m services.RevenueModel) {
	revenueModel = m
}

// loadSnapshot returns the in-memory transaction table for the active
// dataset version, reading Postgres only on cache miss.
func loadSnapshot(ctx context.Context) ([]models.Transaction, string, error) {
	version, err := services.CurrentDatasetVersion(ctx)
	if err != nil {
		return nil, "", err
	}
	if rows, ok := analytics_cache.GetSnapshot(version); ok {
		return rows, version, nil
	}
	rows, err := services.LoadSnapshot(ctx)
	if err != nil {
		return nil, "", err
	}
	analytics_cache.SetSnapshot(version, rows)
	return rows, version, nil
}

// loadRFM returns the segmentation table for the active dataset version,
// recomputing from the snapshot only on cache miss.
func loadRFM(ctx context.Context) ([]models.RFMProfile, error) {
	rows, version, err := loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if profiles, ok := analytics_cache.GetRFM(version); ok {
		return profiles, nil
	}
	profiles := services.GenerateRFM(rows)
	analytics_cache.SetRFM(version, profiles)
	return profiles, nil
}
