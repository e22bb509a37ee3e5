package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingAPIKey = errors.New("未设置 GEMINI_API_KEY")

const envPrefix = "KWFIND"

const (
	keyAPIKey         = "gemini.api_key"
	keyModel          = "analyzer.model"
	keyAnalyzeTimeout = "analyzer.timeout"
	keyWorkers        = "search.workers"
	keyImageWorkers   = "search.image_workers"
	keyMaxTextBytes   = "limits.max_text_bytes"
	keyMaxPDFBytes    = "limits.max_pdf_bytes"
	keyOutput         = "report.output"
	keyLogLevel       = "log.level"
)

type Config struct {
	config *viper.Viper
}

// Load 读取可选的 YAML 配置文件，KWFIND_* 环境变量优先于文件
// （search.workers → KWFIND_SEARCH_WORKERS）。API key 同时读取
// GEMINI_API_KEY 与 KWFIND_GEMINI_API_KEY。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyAPIKey, "GEMINI_API_KEY", envPrefix+"_GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	v.SetDefault(keyModel, "gemini-2.5-flash")
	v.SetDefault(keyAnalyzeTimeout, 60*time.Second)
	v.SetDefault(keyWorkers, 0)
	v.SetDefault(keyImageWorkers, 2)
	v.SetDefault(keyMaxTextBytes, 20*1024*1024)
	v.SetDefault(keyMaxPDFBytes, 20*1024*1024)
	v.SetDefault(keyOutput, "search_result.xlsx")
	v.SetDefault(keyLogLevel, "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
		}
	}
	return &Config{config: v}, nil
}

// APIKey 返回 Gemini key，未设置时返回 ErrMissingAPIKey。
func (c *Config) APIKey() (string, error) {
	key := strings.TrimSpace(c.config.GetString(keyAPIKey))
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

func (c *Config) Model() string { return c.config.GetString(keyModel) }

func (c *Config) AnalyzeTimeout() time.Duration { return c.config.GetDuration(keyAnalyzeTimeout) }

func (c *Config) Workers() int { return c.config.GetInt(keyWorkers) }

func (c *Config) ImageWorkers() int { return c.config.GetInt(keyImageWorkers) }

func (c *Config) MaxTextBytes() int64 { return c.config.GetInt64(keyMaxTextBytes) }

func (c *Config) MaxPDFBytes() int64 { return c.config.GetInt64(keyMaxPDFBytes) }

func (c *Config) Output() string { return c.config.GetString(keyOutput) }

func (c *Config) LogLevel() string { return c.config.GetString(keyLogLevel) }
