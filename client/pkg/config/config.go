// Package config provides configuration management functionality for client operations.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config 客户端配置
type Config struct {
	// 链配置
	ChainID string `json:"chain_id"` // 链 ID，如 columbus-5
	LCDURL  string `json:"lcd_url"`  // LCD REST 端点
	WSURL   string `json:"ws_url"`   // Tendermint WebSocket 端点（可选）
	FCDURL  string `json:"fcd_url"`  // FCD 端点（gas 单价，可选）

	// 地址配置
	// 账户前缀由配置提供，核心不硬编码具体链
	AccountPrefix string `json:"account_prefix"`

	// gas 配置
	GasPrices     string  `json:"gas_prices"`     // 如 "0.015uluna"
	GasAdjustment float64 `json:"gas_adjustment"` // 估算调整系数

	// 钱包配置
	DefaultAccount uint32 `json:"default_account"` // 默认 BIP44 账户索引
}

// DefaultConfig 返回默认配置（columbus 主网）
func DefaultConfig() *Config {
	return &Config{
		ChainID:        "columbus-5",
		LCDURL:         "https://lcd.terra.dev",
		WSURL:          "",
		FCDURL:         "https://fcd.terra.dev",
		AccountPrefix:  "terra",
		GasPrices:      "0.015uluna",
		GasAdjustment:  1.4,
		DefaultAccount: 0,
	}
}

// Load 加载配置，文件不存在时写入默认配置
func Load() (*Config, error) {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // 路径来自用户主目录
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}

// Save 保存配置
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(getConfigPath(), data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// getConfigPath 配置文件路径 ~/.terra-go/config.json
func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".terra-go", "config.json")
}
