package properties

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultMaxDay            = 40
	defaultCapacity          = 18
	defaultPatternDatasetURL = "https://raw.githubusercontent.com/Vinzzztty/Forecasting-Hidroponik/refs/heads/V2/dataset/dataset_model_kualitas.csv"
	defaultExampleDatasetURL = "https://raw.githubusercontent.com/Vinzzztty/Forecasting-Hidroponik/main/dataset/dummy_data_test.csv"
)

func RootPath() string {
	root := os.Getenv("ROOT_PATH")
	if root == "" {
		return "."
	}
	return root
}

func DataPath(elem ...string) string {
	return filepath.Join(append([]string{RootPath(), "data"}, elem...)...)
}

// MaxDay is the length of the growing cycle in days; forecasts never reach past it.
func MaxDay() int {
	return getEnvInt("MAX_DAY", defaultMaxDay)
}

func Capacity() float64 {
	return getEnvFloat("CAPACITY", defaultCapacity)
}

func ForecastModelPath() string {
	return getEnv("FORECAST_MODEL_PATH", DataPath("model", "growth_model.json"))
}

// ModelGrpcAddr is the address of the remote model server. Empty means local models.
func ModelGrpcAddr() string {
	return os.Getenv("MODEL_GRPC_ADDR")
}

func PatternDatasetURL() string {
	return getEnv("PATTERN_DATASET_URL", defaultPatternDatasetURL)
}

func ExampleDatasetURL() string {
	return getEnv("EXAMPLE_DATASET_URL", defaultExampleDatasetURL)
}

func DatasetClientID() string {
	return os.Getenv("DATASET_CLIENT_ID")
}

func DatasetClientSecret() string {
	return os.Getenv("DATASET_CLIENT_SECRET")
}

func DatasetTokenURL() string {
	return os.Getenv("DATASET_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}
