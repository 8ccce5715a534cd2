// Package config provides centralized default values for the Hamat United
// content service. All options are read from the environment once, with
// documented fallback defaults, and exposed as package-level values.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loading configuration overrides from .env file...")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// getEnvStringMulti returns the first non-empty value among the given keys.
// The original deployment accepted both server-side and public variants of
// several secrets, so the same aliases are honored here.
func getEnvStringMulti(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(strings.ToLower(valStr)); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	AllowedOrigins     []string

	// Object Storage Configuration
	StorageURL        string
	StorageServiceKey string
	StorageAnonKey    string
	ContentBucket     string
	ContentObjectPath string
	ImagesBucket      string
	TrustedByBucket   string
	StorageTimeout    time.Duration

	// Admin Access
	AdminAPIKey       string
	AdminPasswordHash string
	JWTSecret         string
	SessionMaxAge     int

	// Content Persistence
	AllowLocalContentWrite bool
	LocalContentPath       string
	StateDir               string
	TrustedByLocalDir      string
	ContentSnapshotTTL     time.Duration

	// Upload Limits
	MaxUploadBytes int64

	// SSE Configuration
	MaxSSEConnections           int64
	SSEHeartbeatIntervalSeconds int
	SSEClientBufferSize         int

	// Image Proxy
	ImageProxyCacheMaxAge int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	// A global write deadline would sever the SSE stream and the admin
	// websocket mid-connection; slow readers are dropped per message by
	// the broadcasters instead.
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 0)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	for _, origin := range strings.Split(getEnvString("ALLOWED_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			AllowedOrigins = append(AllowedOrigins, origin)
		}
	}

	// Object Storage Configuration
	StorageURL = strings.TrimRight(getEnvStringMulti("", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"), "/")
	StorageServiceKey = getEnvStringMulti("", "SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_ROLE_KEY")
	StorageAnonKey = getEnvStringMulti("", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY")
	ContentBucket = getEnvString("SUPABASE_STORAGE_BUCKET", "content")
	ContentObjectPath = getEnvString("SUPABASE_STORAGE_OBJECT_PATH", "content.json")
	ImagesBucket = getEnvString("SUPABASE_IMAGES_BUCKET", "images")
	TrustedByBucket = getEnvString("SUPABASE_TRUSTED_BY_BUCKET", "trusted-by")
	StorageTimeout = getEnvDuration("STORAGE_TIMEOUT", 10*time.Second)

	// Admin Access
	AdminAPIKey = getEnvStringMulti("", "ADMIN_API_KEY", "NEXT_PUBLIC_ADMIN_API_KEY")
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
	JWTSecret = getEnvString("JWT_SECRET", "")
	SessionMaxAge = getEnvInt("SESSION_MAX_AGE_SECONDS", 86400)

	// Content Persistence
	AllowLocalContentWrite = getEnvBool("ALLOW_LOCAL_CONTENT_WRITE", false)
	LocalContentPath = getEnvString("LOCAL_CONTENT_PATH", "content.json")
	StateDir = getEnvString("STATE_DIR", ".hamat-state")
	TrustedByLocalDir = getEnvString("TRUSTED_BY_LOCAL_DIR", "public/Trusted_By")
	ContentSnapshotTTL = getEnvDuration("CONTENT_SNAPSHOT_TTL", 5*time.Minute)

	// Upload Limits (default 5MB)
	MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", 5242880)

	// SSE Configuration
	MaxSSEConnections = int64(getEnvInt("MAX_SSE_CONNECTIONS", 200))
	SSEHeartbeatIntervalSeconds = getEnvInt("SSE_HEARTBEAT_INTERVAL_SECONDS", 30)
	SSEClientBufferSize = getEnvInt("SSE_CLIENT_BUFFER_SIZE", 10)

	// Image Proxy
	ImageProxyCacheMaxAge = getEnvInt("IMAGE_PROXY_CACHE_MAX_AGE", 86400)
}
