// ════════════════════════════════════════════════════════════
// Path: utils/search_tracker.go
// Record storefront fitment searches
// ════════════════════════════════════════════════════════════

package utils

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/Mininormi/mininormi1210/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const insertSearchEvent = `
	INSERT INTO fitment_search_events (
		id, searched_at, vehicle_id, pcd, axle, total,
		ip_address, user_agent, device_type, browser, os
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// Execer is the slice of *pgxpool.Pool the tracker needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type SearchEvent struct {
	ID         uuid.UUID
	SearchedAt time.Time
	VehicleID  string
	PCD        string
	Axle       string
	Total      int
	IPAddress  string
	UserAgent  string
	DeviceType string
	Browser    string
	OS         string
}

// NewSearchEvent captures the request metadata of a finished search.
func NewSearchEvent(c *gin.Context, vehicleID, pcd, axle string, total int) SearchEvent {
	userAgent := c.GetHeader("User-Agent")
	return SearchEvent{
		ID:         uuid.New(),
		SearchedAt: time.Now().UTC(),
		VehicleID:  vehicleID,
		PCD:        pcd,
		Axle:       axle,
		Total:      total,
		IPAddress:  GetClientIP(c),
		UserAgent:  userAgent,
		DeviceType: parseDeviceType(userAgent),
		Browser:    parseBrowser(userAgent),
		OS:         parseOS(userAgent),
	}
}

// SearchTracker writes search events in the background. A tracker without a
// pool drops events.
type SearchTracker struct {
	db      Execer
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewSearchTracker(db Execer) *SearchTracker {
	return &SearchTracker{db: db, timeout: 5 * time.Second}
}

func (t *SearchTracker) Enabled() bool {
	return t != nil && t.db != nil
}

// Track never blocks the request path.
func (t *SearchTracker) Track(ev SearchEvent) {
	if !t.Enabled() {
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := config.WithCustomTimeout(t.timeout)
		defer cancel()

		if err := t.Record(ctx, ev); err != nil {
			config.Log.Error().Err(err).Str("vehicle_id", ev.VehicleID).Msg("❌ Failed to log search event")
		}
	}()
}

func (t *SearchTracker) Record(ctx context.Context, ev SearchEvent) error {
	var vehicleID, pcd *string
	if ev.VehicleID != "" {
		vehicleID = &ev.VehicleID
	}
	if ev.PCD != "" {
		pcd = &ev.PCD
	}

	_, err := t.db.Exec(ctx, insertSearchEvent,
		ev.ID.String(),
		ev.SearchedAt,
		vehicleID,
		pcd,
		ev.Axle,
		ev.Total,
		ev.IPAddress,
		ev.UserAgent,
		ev.DeviceType,
		ev.Browser,
		ev.OS,
	)
	return err
}

// Wait blocks until in-flight events are written. Used on shutdown.
func (t *SearchTracker) Wait() {
	if t == nil {
		return
	}
	t.wg.Wait()
}

// parseDeviceType determines if the request is from mobile, tablet, or desktop
func parseDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") {
		return "mobile"
	}
	return "desktop"
}

// parseBrowser extracts browser name from user agent
func parseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	}
	return "Other"
}

// parseOS extracts operating system from user agent.
// Android and iOS agents also mention Linux and Mac OS, so they go first.
func parseOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "Other"
}

// GetClientIP gets the real client IP (handles proxies)
func GetClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	return c.ClientIP()
}
