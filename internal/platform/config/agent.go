package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AgentConfig holds the field agent (offline client) configuration.
type AgentConfig struct {
	ServerURL      string
	APIToken       string
	EnableOffline  bool
	QueueDBPath    string
	SyncInterval   time.Duration
	SettleDelay    time.Duration
	ProbeInterval  time.Duration
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	// SyncEndpoints overrides the default entity -> endpoint table.
	SyncEndpoints map[string]string
	MetricsAddr   string

	// ProjectID is attached to every punch when set.
	ProjectID string
	// SiteLocation enables the geofence check on punches.
	SiteLocation    *domain.GeoPoint
	GeofenceRadius  float64
	RequireGeofence bool
}

// LoadAgentConfig reads the field agent configuration. configFile may be empty,
// in which case ~/.solar-agent/config.yaml and ./config.yaml are tried.
func LoadAgentConfig(configFile string) (*AgentConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".solar-agent"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("SERVER_URL", "http://localhost:8080")
	v.SetDefault("API_TOKEN", "")
	v.SetDefault("ENABLE_OFFLINE", true)
	v.SetDefault("QUEUE_DB_PATH", defaultQueuePath())
	v.SetDefault("SYNC_INTERVAL", "30s")
	v.SetDefault("SETTLE_DELAY", "2s")
	v.SetDefault("PROBE_INTERVAL", "5s")
	v.SetDefault("REQUEST_TIMEOUT", "7s")
	v.SetDefault("MAX_RETRIES", 5)
	v.SetDefault("RETRY_BASE_DELAY", "1s")
	v.SetDefault("SYNC_ENDPOINTS", "")
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("PROJECT_ID", "")
	v.SetDefault("SITE_LOCATION", "")
	v.SetDefault("GEOFENCE_RADIUS", domain.DefaultGeofenceRadius)
	v.SetDefault("REQUIRE_GEOFENCE", false)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	endpoints, err := parseEndpoints(v.GetString("SYNC_ENDPOINTS"))
	if err != nil {
		return nil, err
	}
	site, err := parseSite(v.GetString("SITE_LOCATION"))
	if err != nil {
		return nil, err
	}

	cfg := &AgentConfig{
		ServerURL:      strings.TrimRight(v.GetString("SERVER_URL"), "/"),
		APIToken:       v.GetString("API_TOKEN"),
		EnableOffline:  v.GetBool("ENABLE_OFFLINE"),
		QueueDBPath:    v.GetString("QUEUE_DB_PATH"),
		SyncInterval:   durationOr(v, "SYNC_INTERVAL", 30*time.Second),
		SettleDelay:    durationOr(v, "SETTLE_DELAY", 2*time.Second),
		ProbeInterval:  durationOr(v, "PROBE_INTERVAL", 5*time.Second),
		RequestTimeout: durationOr(v, "REQUEST_TIMEOUT", 7*time.Second),
		MaxRetries:     v.GetInt("MAX_RETRIES"),
		RetryBaseDelay: durationOr(v, "RETRY_BASE_DELAY", time.Second),
		SyncEndpoints:  endpoints,
		MetricsAddr:    v.GetString("METRICS_ADDR"),

		ProjectID:       v.GetString("PROJECT_ID"),
		SiteLocation:    site,
		GeofenceRadius:  v.GetFloat64("GEOFENCE_RADIUS"),
		RequireGeofence: v.GetBool("REQUIRE_GEOFENCE"),
	}

	if cfg.MaxRetries < 1 {
		log.Printf("Warning: Invalid value for MAX_RETRIES (%d). Defaulting to 5.\n", cfg.MaxRetries)
		cfg.MaxRetries = 5
	}
	if cfg.GeofenceRadius <= 0 {
		log.Printf("Warning: Invalid value for GEOFENCE_RADIUS (%v). Defaulting to %v.\n", cfg.GeofenceRadius, domain.DefaultGeofenceRadius)
		cfg.GeofenceRadius = domain.DefaultGeofenceRadius
	}
	if cfg.RequireGeofence && cfg.SiteLocation == nil {
		return nil, fmt.Errorf("REQUIRE_GEOFENCE is set but SITE_LOCATION is empty")
	}
	if cfg.APIToken == "" {
		log.Println("Warning: API_TOKEN not set. Requests to the server will be rejected.")
	}

	return cfg, nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

// parseEndpoints reads "entity=/path,entity=/path" pairs.
func parseEndpoints(raw string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range splitList(raw) {
		entity, path, ok := strings.Cut(pair, "=")
		entity, path = strings.TrimSpace(entity), strings.TrimSpace(path)
		if !ok || entity == "" || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("invalid SYNC_ENDPOINTS entry %q, want entity=/path", pair)
		}
		out[entity] = path
	}
	return out, nil
}

// parseSite reads "latitude,longitude" in decimal degrees. Empty means no site.
func parseSite(raw string) (*domain.GeoPoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return nil, fmt.Errorf("invalid SITE_LOCATION %q, want latitude,longitude", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SITE_LOCATION latitude %q: %w", latRaw, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SITE_LOCATION longitude %q: %w", lngRaw, err)
	}
	site := domain.GeoPoint{Latitude: lat, Longitude: lng}
	if !site.Valid() {
		return nil, fmt.Errorf("SITE_LOCATION %q is out of range", raw)
	}
	return &site, nil
}

func defaultQueuePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "solar-agent-queue.db"
	}
	return filepath.Join(home, ".solar-agent", "queue.db")
}
