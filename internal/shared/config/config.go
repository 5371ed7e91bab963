package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// 全局配置变量
var (
	globalServerConfig *ServerConfig
	configMutex        sync.RWMutex
)

// SetGlobalServerConfig 设置全局服务器配置
func SetGlobalServerConfig(config *ServerConfig) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalServerConfig = config
}

// GetGlobalServerConfig 获取全局服务器配置
func GetGlobalServerConfig() *ServerConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalServerConfig
}

// ServerConfig 报表服务配置
type ServerConfig struct {
	App struct {
		Name           string `yaml:"name"`
		Mode           string `yaml:"mode"`
		Listen         string `yaml:"listen"`
		ReadTimeout    int    `yaml:"read_timeout"`     // 秒
		WriteTimeout   int    `yaml:"write_timeout"`    // 秒
		IdleTimeout    int    `yaml:"idle_timeout"`     // 秒
		MaxHeaderBytes int    `yaml:"max_header_bytes"` // MB
	} `yaml:"app"`

	Database struct {
		Type string `yaml:"type"`
		Path string `yaml:"path"`
	} `yaml:"database"`

	Report struct {
		DefaultPeriodHours int    `yaml:"default_period_hours"`
		IncludeHistorical  bool   `yaml:"include_historical"`
		RefreshSpec        string `yaml:"refresh_spec"`   // cron表达式，定时刷新缓存报表
		RetentionSpec      string `yaml:"retention_spec"` // cron表达式，定时清理过期会话
		RetentionDays      int    `yaml:"retention_days"`
	} `yaml:"report"`
}

// findConfigFile 智能查找配置文件
func findConfigFile(filename string) (string, error) {
	// 候选路径列表
	candidates := []string{
		filename,
		filepath.Join("configs", filename),
		filepath.Join("..", filename),
		filepath.Join("..", "configs", filename),
		filepath.Join("../..", "configs", filename),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate, nil
			}
			return abs, nil
		}
	}

	return "", fmt.Errorf("配置文件 %s 未找到，已搜索路径: %v", filename, candidates)
}

// LoadServerConfig 加载报表服务配置
func LoadServerConfig(configPath string) (*ServerConfig, error) {
	config := &ServerConfig{}

	// 设置默认值
	config.App.Name = "LNMT Report Server"
	config.App.Mode = "release"
	config.App.Listen = ":8080"
	config.App.ReadTimeout = 15
	config.App.WriteTimeout = 15
	config.App.IdleTimeout = 60
	config.App.MaxHeaderBytes = 1
	config.Database.Type = "sqlite"
	config.Database.Path = "data/lnmt.db"
	config.Report.DefaultPeriodHours = 24
	config.Report.IncludeHistorical = true
	config.Report.RefreshSpec = "0 */15 * * * *"
	config.Report.RetentionSpec = "0 0 * * * *"
	config.Report.RetentionDays = 30

	if configPath != "" {
		// 智能查找配置文件
		actualPath, err := findConfigFile(configPath)
		if err != nil {
			return nil, err
		}

		data, err := os.ReadFile(actualPath)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	// 验证必需配置
	if config.Report.DefaultPeriodHours < 1 {
		return nil, fmt.Errorf("report.default_period_hours 必须大于0")
	}
	if config.Report.RetentionDays < 1 {
		return nil, fmt.Errorf("report.retention_days 必须大于0")
	}

	return config, nil
}

// SaveServerConfig 保存报表服务配置
func SaveServerConfig(config *ServerConfig, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("保存配置文件失败: %w", err)
	}

	return nil
}
