package settings

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var Settings *AppSettings

func NewSettings() *AppSettings {
	settings := AppSettings{
		Domain:         getEnvOrDefault("KEYDASH_DOMAIN", "localhost"),
		Port:           getEnvOrDefault("KEYDASH_PORT", ":8080"),
		DatabaseDriver: getEnvOrDefault("KEYDASH_DB_DRIVER", DriverSQLite),
		SQLiteDatabase: getEnvOrDefault("KEYDASH_DB_PATH", "file:.///db.sqlite"),
		PostgresURL:    getEnvOrDefault("KEYDASH_DATABASE_URL", ""),
		GitHubAPIURL:   getEnvOrDefault("KEYDASH_GITHUB_API_URL", "https://api.github.com"),
		HTTPTimeout:    getEnvSeconds("KEYDASH_HTTP_TIMEOUT", 10*time.Second),
	}
	if !strings.HasPrefix(settings.Port, ":") {
		settings.Port = ":" + settings.Port
	}
	return &settings
}

func getEnvOrDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}

type AppSettings struct {
	Domain         string
	Port           string
	DatabaseDriver string
	SQLiteDatabase string
	PostgresURL    string
	GitHubAPIURL   string
	HTTPTimeout    time.Duration
}

func (as *AppSettings) BaseURL() string {
	if as.Domain == "localhost" {
		return fmt.Sprintf("http://%s%s", as.Domain, as.Port)
	} else {
		return fmt.Sprintf("https://%s", as.Domain)
	}
}

func (as *AppSettings) SQLiteDbString(readonly bool) string {
	params := make(url.Values)
	params.Add("_journal_mode", "WAL")
	params.Add("_busy_timeout", "5000")
	params.Add("_synchronous", "NORMAL")
	params.Add("_cache_size", "-20000")
	params.Add("_foreign_keys", "ON")
	if readonly {
		params.Add("mode", "ro")
	} else {
		params.Add("_txlock", "IMMEDIATE")
		params.Add("mode", "rwc")
	}

	return as.SQLiteDatabase + "?" + params.Encode()
}

func ReadDotenv(path string) {
	re := regexp.MustCompile(`^[^0-9][A-Z0-9_]+=.+$`)
	f, err := os.Open(path)
	if err != nil {
		// a missing dotenv is fine, settings fall back to defaults
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] != '#' && re.Match(line) {
			split := strings.Split(string(line), "=")
			name := strings.TrimSpace(split[0])
			value := strings.TrimSpace(split[1])
			value = strings.Trim(value, `"`)
			os.Setenv(name, value)
		}
	}
}
