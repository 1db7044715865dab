package analytics_cache

import (
	"sync"
	"time"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
)

const TTL = 5 * time.Minute

// Every entry is keyed by the dataset version it was computed from, so a
// stale snapshot can never serve results for a newer ingest even inside the
// TTL window. Ingest calls Invalidate() explicitly on top of that.

// ── Snapshot cache ───────────────────────────────────────────────────────────
// The full in-memory transaction table; every analytics request reads from
// this instead of re-querying Postgres.

type snapshotEntry struct {
	rows      []models.Transaction
	version   string
	fetchedAt time.Time
}

var (
	snapMu    sync.RWMutex
	snapCache *snapshotEntry
)

func GetSnapshot(version string) ([]models.Transaction, bool) {
	snapMu.RLock()
	defer snapMu.RUnlock()
	if snapCache != nil && snapCache.version == version && time.Since(snapCache.fetchedAt) < TTL {
		return snapCache.rows, true
	}
	return nil, false
}

func SetSnapshot(version string, rows []models.Transaction) {
	snapMu.Lock()
	defer snapMu.Unlock()
	snapCache = &snapshotEntry{rows: rows, version: version, fetchedAt: time.Now()}
}

// ── RFM profile cache ────────────────────────────────────────────────────────
// Segmentation over the whole customer population is the most expensive
// derived result; both the table and summary endpoints read from this.

type rfmEntry struct {
	profiles  []models.RFMProfile
	version   string
	fetchedAt time.Time
}

var (
	rfmMu    sync.RWMutex
	rfmCache *rfmEntry
)

func GetRFM(version string) ([]models.RFMProfile, bool) {
	rfmMu.RLock()
	defer rfmMu.RUnlock()
	if rfmCache != nil && rfmCache.version == version && time.Since(rfmCache.fetchedAt) < TTL {
		return rfmCache.profiles, true
	}
	return nil, false
}

func SetRFM(version string, profiles []models.RFMProfile) {
	rfmMu.Lock()
	defer rfmMu.Unlock()
	rfmCache = &rfmEntry{profiles: profiles, version: version, fetchedAt: time.Now()}
}

// ── Invalidate everything (call after every snapshot replace) ────────────────

func Invalidate() {
	snapMu.Lock()
	snapCache = nil
	snapMu.Unlock()

	rfmMu.Lock()
	rfmCache = nil
	rfmMu.Unlock()
}
