// Package config 是服务配置（YAML）。引擎核心不读配置文件，
// 所有构建参数经由这里显式传入，保证核心可单测、可复现。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是服务的完整配置。
type Config struct {
	// Listen HTTP 监听地址
	Listen string `yaml:"listen"`

	Redis struct {
		// Addr 为空时使用内存缓存
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	Cache CacheConfig `yaml:"cache"`

	Engine EngineConfig `yaml:"engine"`

	Dataset struct {
		// Products / Events 商品与行为快照的 JSON 文件路径，
		// 均为空时使用内置示例数据
		Products string `yaml:"products"`
		Events   string `yaml:"events"`
	} `yaml:"dataset"`
}

// CacheConfig 是各策略推荐列表的缓存 TTL（秒）。
type CacheConfig struct {
	UserTTL    int `yaml:"user_ttl"`    // 个性化推荐
	SimilarTTL int `yaml:"similar_ttl"` // 相似商品
	PopularTTL int `yaml:"popular_ttl"` // 热门推荐
}

// EngineConfig 是引擎构建参数。
type EngineConfig struct {
	MaxFeatures int      `yaml:"max_features"` // 内容词表容量，默认 1000
	NGramMax    int      `yaml:"ngram_max"`    // 词组最大长度，默认 2
	RankCap     int      `yaml:"rank_cap"`     // 因子分解秩上限，默认 50
	FilterRules []string `yaml:"filter_rules"` // 候选过滤规则（CEL 表达式）
}

// Default 返回默认配置：监听 :5000，内存缓存，
// 缓存 TTL 沿用 300/600/1800 秒的策略分级。
func Default() *Config {
	cfg := &Config{Listen: ":5000"}
	cfg.Cache = CacheConfig{UserTTL: 300, SimilarTTL: 600, PopularTTL: 1800}
	return cfg
}

// Load 从 YAML 文件加载配置，缺省字段回填默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":5000"
	}
	if c.Cache.UserTTL <= 0 {
		c.Cache.UserTTL = 300
	}
	if c.Cache.SimilarTTL <= 0 {
		c.Cache.SimilarTTL = 600
	}
	if c.Cache.PopularTTL <= 0 {
		c.Cache.PopularTTL = 1800
	}
}
