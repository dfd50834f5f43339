package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Драйверы хранилища состояния
const (
	StorageDriverBolt  = "bolt"
	StorageDriverRedis = "redis"
)

type Config struct {
	Http    *HTTPConfig
	Storage *StorageCfg
	Redis   *RedisCfg
	Cart    *CartCfg
	Writer  *WriterCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageCfg struct {
	Driver   string // bolt или redis
	BoltPath string // путь к файлу BoltDB
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

type CartCfg struct {
	RecentlyViewedLimit int // максимальная длина списка недавно просмотренных товаров
}

type WriterCfg struct {
	MaxRetries  int           // число попыток записи снапшота перед его отбрасыванием
	BaseBackoff time.Duration // начальная задержка между попытками
	MaxBackoff  time.Duration // максимальная задержка между попытками
	SaveTimeout time.Duration // таймаут одной записи в хранилище
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	storage, err := loadStorageCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cart, err := loadCartCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	writer, err := loadWriterCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    http,
		Storage: storage,
		Redis:   redis,
		Cart:    cart,
		Writer:  writer,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadStorageCfg() (*StorageCfg, error) {
	const (
		defaultDriver   = StorageDriverBolt
		defaultBoltPath = "data/storefront.db"
	)

	driver := getEnvOrDefault("STORAGE_DRIVER", defaultDriver)
	if driver != StorageDriverBolt && driver != StorageDriverRedis {
		return nil, e.Wrap(fmt.Sprintf("STORAGE_DRIVER: %s", driver), e.ErrUnsupportedStorageDriver)
	}

	return &StorageCfg{
		Driver:   driver,
		BoltPath: getEnvOrDefault("BOLT_PATH", defaultBoltPath),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("REDIS_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
	}, nil
}

func loadCartCfg() (*CartCfg, error) {
	const defaultRecentlyViewedLimit = 10

	limit, err := parseIntEnv("RECENTLY_VIEWED_LIMIT", defaultRecentlyViewedLimit)
	if err != nil {
		return nil, e.Wrap("RECENTLY_VIEWED_LIMIT", err)
	}

	if limit <= 0 {
		return nil, e.Wrap(fmt.Sprintf("RECENTLY_VIEWED_LIMIT: %d", limit), e.ErrIncorrectEnvVariable)
	}

	return &CartCfg{
		RecentlyViewedLimit: limit,
	}, nil
}

func loadWriterCfg(log logger.Logger) (*WriterCfg, error) {
	const (
		defaultMaxRetries  = 3
		defaultBaseBackoff = 200 * time.Millisecond
		defaultMaxBackoff  = 2 * time.Second
		defaultSaveTimeout = 5 * time.Second
	)

	maxRetries, err := parseIntEnv("PERSIST_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("PERSIST_MAX_RETRIES", err)
	}

	baseBackoff, err := parseDurationEnv("PERSIST_BASE_BACKOFF", defaultBaseBackoff)
	if err != nil {
		log.Errorf(err, "invalid PERSIST_BASE_BACKOFF")
		return nil, err
	}

	maxBackoff, err := parseDurationEnv("PERSIST_MAX_BACKOFF", defaultMaxBackoff)
	if err != nil {
		log.Errorf(err, "invalid PERSIST_MAX_BACKOFF")
		return nil, err
	}

	saveTimeout, err := parseDurationEnv("PERSIST_SAVE_TIMEOUT", defaultSaveTimeout)
	if err != nil {
		log.Errorf(err, "invalid PERSIST_SAVE_TIMEOUT")
		return nil, err
	}

	return &WriterCfg{
		MaxRetries:  maxRetries,
		BaseBackoff: baseBackoff,
		MaxBackoff:  maxBackoff,
		SaveTimeout: saveTimeout,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
