package core

import (
	"database/sql"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/process"

	"bangarr/internal/clients/bangumi"
	"bangarr/internal/clients/notifications"
	"bangarr/internal/clients/sonarr"
	"bangarr/internal/config"
	"bangarr/internal/database/models"
	"bangarr/internal/utils"
)

// WatchingSource is the slice of the Bangumi client the manager depends on.
type WatchingSource interface {
	GetWatching(userID string) ([]bangumi.Subject, error)
}

// Manager owns the fetch-and-resolve pipeline and the optional warm-refresh
// scheduler.
type Manager struct {
	config    *config.Config
	cache     *models.TVDBCacheRepository
	bangumi   WatchingSource
	resolver  *Resolver
	notifier  notifications.Notifier
	logger    *utils.Logger
	scheduler *cron.Cron
	startedAt time.Time

	mu            sync.Mutex
	lastFetchAt   time.Time
	lastFetchSize int
}

type SystemStatus struct {
	Uptime        string     `json:"uptime"`
	CachedEntries int        `json:"cached_entries"`
	LastFetchAt   *time.Time `json:"last_fetch_at,omitempty"`
	LastFetchSize int        `json:"last_fetch_size"`
	MemoryRSS     uint64     `json:"memory_rss_bytes"`
}

func NewManager(cfg *config.Config, db *sql.DB, logger *utils.Logger) *Manager {
	cache := models.NewTVDBCacheRepository(db, time.Duration(cfg.Cache.ExpireDays)*24*time.Hour)
	sonarrClient := sonarr.NewClient(cfg.Sonarr.URL, cfg.Sonarr.APIKey)

	m := &Manager{
		config:    cfg,
		cache:     cache,
		bangumi:   bangumi.NewClient(cfg.Bangumi.BaseURL),
		resolver:  NewResolver(cache, sonarrClient, logger),
		logger:    logger,
		scheduler: cron.New(),
		startedAt: time.Now(),
	}

	if cfg.Notifications.PushbulletAPIKey != "" {
		m.notifier = notifications.NewPushbulletClient(cfg.Notifications.PushbulletAPIKey, logger)
	}

	return m
}

// FetchWatching returns the user's currently-watching list with each title
// resolved to a TVDB id, upstream order preserved. Any failure degrades to an
// empty list; the caller never sees an error.
func (m *Manager) FetchWatching() []models.WatchingItem {
	subjects, err := m.bangumi.GetWatching(m.config.Bangumi.UserID)
	if err != nil {
		m.logger.Error("Bangumi API request failed:", err)
		return []models.WatchingItem{}
	}

	items := make([]models.WatchingItem, 0, len(subjects))
	for _, subject := range subjects {
		tvdbID, err := m.resolver.Resolve(subject.Name)
		if err != nil {
			m.logger.Error("Cache storage failure while resolving", subject.Name+":", err)
			return []models.WatchingItem{}
		}
		if tvdbID == 0 && m.notifier != nil {
			m.notifier.NotifyResolveFailed(subject.Name)
		}
		items = append(items, models.WatchingItem{Title: subject.Name, TVDBId: tvdbID})
	}

	m.mu.Lock()
	m.lastFetchAt = time.Now()
	m.lastFetchSize = len(items)
	m.mu.Unlock()

	return items
}

// StartScheduler begins the periodic warm refresh when refresh.interval is
// configured, so Sonarr imports rarely hit a cold cache.
func (m *Manager) StartScheduler() {
	interval := m.config.Refresh.Interval
	if interval == "" {
		return
	}
	if _, err := m.scheduler.AddFunc("@every "+interval, func() { m.FetchWatching() }); err != nil {
		m.logger.Error("Invalid refresh interval", interval+":", err)
		return
	}
	m.scheduler.Start()
	m.logger.Info("Warm refresh scheduled every", interval)
}

func (m *Manager) Stop() {
	m.scheduler.Stop()
}

func (m *Manager) GetSystemStatus() SystemStatus {
	status := SystemStatus{
		Uptime: time.Since(m.startedAt).Round(time.Second).String(),
	}

	if count, err := m.cache.Count(); err == nil {
		status.CachedEntries = count
	} else {
		m.logger.Error("Failed to count cache entries:", err)
	}

	m.mu.Lock()
	if !m.lastFetchAt.IsZero() {
		at := m.lastFetchAt
		status.LastFetchAt = &at
	}
	status.LastFetchSize = m.lastFetchSize
	m.mu.Unlock()

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil {
			status.MemoryRSS = mem.RSS
		}
	}

	return status
}
