// Package config собирает настройки: значения по умолчанию, YAML-файл,
// .env и переменные окружения. Флаги командной строки применяются поверх в cmd.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// EnvConfigFile — переменная с путём к YAML-файлу настроек.
const EnvConfigFile = "STRUCTGEN_CONFIG"

// Config — все настройки запуска утилиты.
type Config struct {
	OutDir       string   `yaml:"out"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
	DirPerm      string   `yaml:"dir_perm"`
	FilePerm     string   `yaml:"file_perm"`
	ExecGlobs    []string `yaml:"exec_globs"`
	DBMode0600   bool     `yaml:"db_0600"`
	KeepExisting bool     `yaml:"keep_existing"`
	MetricsFile  string   `yaml:"metrics_file"`
}

// Default — права по умолчанию: каталоги 0755, файлы 0644.
func Default() *Config {
	return &Config{
		OutDir:    ".",
		LogLevel:  "warn",
		LogFormat: "console",
		DirPerm:   "0755",
		FilePerm:  "0644",
	}
}

// Load читает настройки. path может быть пустым — тогда берётся
// STRUCTGEN_CONFIG, а если нет и его, YAML-файл не читается.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать файл настроек %q: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("файл настроек %q: %w", path, err)
		}
	}

	cfg.OutDir = envOr("STRUCTGEN_OUT", cfg.OutDir)
	cfg.LogLevel = envOr("STRUCTGEN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("STRUCTGEN_LOG_FORMAT", cfg.LogFormat)
	cfg.DirPerm = envOr("STRUCTGEN_DIR_PERM", cfg.DirPerm)
	cfg.FilePerm = envOr("STRUCTGEN_FILE_PERM", cfg.FilePerm)
	if v := os.Getenv("STRUCTGEN_EXEC_GLOB"); v != "" {
		cfg.ExecGlobs = SplitGlobs(v)
	}
	cfg.DBMode0600 = envBool("STRUCTGEN_DB_0600", cfg.DBMode0600)
	cfg.KeepExisting = envBool("STRUCTGEN_KEEP_EXISTING", cfg.KeepExisting)
	cfg.MetricsFile = envOr("STRUCTGEN_METRICS_FILE", cfg.MetricsFile)

	if _, err := ParsePerm(cfg.DirPerm, 0o755); err != nil {
		return nil, fmt.Errorf("неверные права для каталогов %q: %w", cfg.DirPerm, err)
	}
	if _, err := ParsePerm(cfg.FilePerm, 0o644); err != nil {
		return nil, fmt.Errorf("неверные права для файлов %q: %w", cfg.FilePerm, err)
	}
	return cfg, nil
}

// ParsePerm разбирает восьмеричные права: 0755, 755 и 0o755.
func ParsePerm(s string, def os.FileMode) (os.FileMode, error) {
	ss := strings.TrimSpace(s)
	if ss == "" {
		return def, nil
	}
	// без префикса 755 всё равно восьмеричное
	ss = strings.TrimPrefix(strings.TrimPrefix(ss, "0o"), "0O")
	u, err := strconv.ParseUint(ss, 8, 32)
	if err != nil {
		return 0, err
	}
	if u > 0o7777 {
		return 0, fmt.Errorf("слишком большое значение %o", u)
	}
	return os.FileMode(u), nil
}

// SplitGlobs разбивает список шаблонов через запятую.
func SplitGlobs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
