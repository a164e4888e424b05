package resource

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	mu         sync.RWMutex
	properties = viper.New()
	envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)
)

// LoadFile reads application properties from a YAML file on disk.
func LoadFile(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}
	return Load(data)
}

// Load replaces the current properties with the given YAML document, resolving
// ${ENV_NAME:default} placeholders against the process environment.
func Load(data []byte) error {
	raw := viper.New()
	raw.SetConfigType("yml")
	if err := raw.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("fail to parse properties: %w", err)
	}

	flat := make(map[string]any)
	parsePropertiesMap("", raw.AllSettings(), flat)

	resolved := viper.New()
	for key, value := range flat {
		resolved.Set(key, value)
	}

	mu.Lock()
	properties = resolved
	mu.Unlock()
	return nil
}

// parsePropertiesMap flattens the YAML tree into dotted keys
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolvedValue, ok := resolveEnvVariable(v); ok {
				result[fullKey] = resolvedValue
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable expands a ${ENV:default} value. Plain values are returned as they are;
// a placeholder with neither env value nor default is dropped.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(value)
	if matches == nil {
		return value, true
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue, true
	}
	if matches[2] != "" {
		return matches[2], true
	}
	return "", false
}

func current() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	return properties
}

func Get(key string) any {
	return current().Get(key)
}

func GetString(key string) string {
	return current().GetString(key)
}

func GetBool(key string) bool {
	return current().GetBool(key)
}

func GetDuration(key string) time.Duration {
	return current().GetDuration(key)
}

func GetInt(key string) int {
	return current().GetInt(key)
}

func GetInt64(key string) int64 {
	return current().GetInt64(key)
}

func GetStringSlice(key string) []string {
	return current().GetStringSlice(key)
}
