package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	consts "media-uploader/pkg/constants"
)

type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Storage StorageConfig
	Redis   RedisConfig
	Env     string
}

type ServerConfig struct {
	Port string
	Host string
}

type UploadConfig struct {
	ScratchDir    string
	ChunkSize     int64         // bytes
	MaxRetries    int           // chunk başına deneme limiti
	RetryDelay    time.Duration // backoff taban süresi
	ScratchMaxAge time.Duration // cron sweep eşiği
	Limits        map[string]KindLimit
}

// Upload türü başına boyut tavanı ve MIME allow-list'i.
// AllowedMimeTypes boş ise her tip kabul edilir.
type KindLimit struct {
	MaxSize          int64
	AllowedMimeTypes []string
}

func (l KindLimit) AllowsMime(mime string) bool {
	if len(l.AllowedMimeTypes) == 0 {
		return true
	}
	for _, m := range l.AllowedMimeTypes {
		if m == mime {
			return true
		}
	}
	return false
}

type StorageConfig struct {
	Driver string // "s3" veya "memory"
	Bucket string
	Region string
}

type RedisConfig struct {
	Host string
	Port string
}

func LoadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Upload: UploadConfig{
			ScratchDir:    getEnv("UPLOAD_SCRATCH_DIR", "scratch_uploads"),
			ChunkSize:     getEnvAsInt64("UPLOAD_CHUNK_SIZE", 8*1024*1024), // 8MB
			MaxRetries:    int(getEnvAsInt64("UPLOAD_MAX_RETRIES", 3)),
			RetryDelay:    time.Duration(getEnvAsInt64("UPLOAD_RETRY_DELAY_MS", 2000)) * time.Millisecond,
			ScratchMaxAge: time.Duration(getEnvAsInt64("UPLOAD_SCRATCH_MAX_AGE_HOURS", 24)) * time.Hour,
			Limits: map[string]KindLimit{
				consts.KindImage: {
					MaxSize:          getEnvAsInt64("UPLOAD_IMAGE_MAX_SIZE", 10*1024*1024), // 10MB
					AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
				},
				consts.KindVideo: {
					MaxSize: getEnvAsInt64("UPLOAD_VIDEO_MAX_SIZE", 10*1024*1024*1024), // 10GB
					AllowedMimeTypes: []string{
						"video/mp4", "video/avi", "video/mov", "video/wmv",
						"video/flv", "video/webm", "video/mkv",
					},
				},
				consts.KindGeneric: {
					MaxSize:          getEnvAsInt64("UPLOAD_FILE_MAX_SIZE", 1024*1024*1024), // 1GB
					AllowedMimeTypes: nil,                                                   // her tip
				},
			},
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "s3"),
			Bucket: getEnv("S3_BUCKET", "media-uploads"),
			Region: getEnv("S3_REGION", "eu-central-1"),
		},
		Redis: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		Env: getEnv("APP_ENV", "development"),
	}

	// Scratch dizinini proje köküne göre oluştur
	projectRoot, err := findProjectRoot()
	if err != nil {
		panic(err)
	}
	if !filepath.IsAbs(config.Upload.ScratchDir) {
		config.Upload.ScratchDir = filepath.Join(projectRoot, config.Upload.ScratchDir)
	}
	if err := os.MkdirAll(config.Upload.ScratchDir, 0755); err != nil {
		panic(err)
	}

	return config
}

// En büyük kind tavanı, fiber BodyLimit için
func (c *Config) MaxBodySize() int64 {
	var max int64
	for _, l := range c.Upload.Limits {
		if l.MaxSize > max {
			max = l.MaxSize
		}
	}
	return max
}

func findProjectRoot() (string, error) {
	current, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Root'a ulaştık, go.mod bulunamadı
			return os.Getwd()
		}
		current = parent
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
