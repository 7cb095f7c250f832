package app

import "os"

// Поддерживаемые бэкенды хранения.
const (
	StorageMemory   = "memory"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	// Storage выбирает бэкенд репозиториев: memory, mongo или postgres.
	Storage     string
	MongoURI    string
	MongoDB     string
	PostgresDSN string

	// KafkaBrokers — список брокеров через запятую; пустая строка
	// отключает публикацию событий.
	KafkaBrokers string
}

// DefaultConfig возвращает конфигурацию для локального запуска без
// внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		Storage:     StorageMemory,
		MongoURI:    "mongodb://localhost:27017",
		MongoDB:     "fos",
	}
}

// ReadConfig накладывает переменные окружения поверх значений по умолчанию.
func ReadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("FOS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("FOS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("FOS_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("FOS_MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("FOS_MONGO_DB"); v != "" {
		cfg.MongoDB = v
	}
	if v := os.Getenv("FOS_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	return cfg
}
