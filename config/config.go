package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Api     ApiConf     `toml:"api" mapstructure:"api"`
	Log     LogConf     `toml:"log" mapstructure:"log"`
	DB      DBConf      `toml:"db" mapstructure:"db"`
	Minio   MinioConf   `toml:"minio" mapstructure:"minio"`
	Chain   ChainConf   `toml:"chain" mapstructure:"chain"`
	Pricing PricingConf `toml:"pricing" mapstructure:"pricing"`
}

type ApiConf struct {
	Port string `toml:"port" mapstructure:"port"`
}

type LogConf struct {
	Level string `toml:"level" mapstructure:"level"`
}

type DBConf struct {
	DSN         string `toml:"dsn" mapstructure:"dsn"`
	MaxIdleCons int    `toml:"max_idle_cons" mapstructure:"max_idle_cons"`
	MaxOpenCons int    `toml:"max_open_cons" mapstructure:"max_open_cons"`
}

type MinioConf struct {
	Endpoint  string `toml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `toml:"access_key" mapstructure:"access_key"`
	SecretKey string `toml:"secret_key" mapstructure:"secret_key"`
	Bucket    string `toml:"bucket" mapstructure:"bucket"`
	UseSSL    bool   `toml:"use_ssl" mapstructure:"use_ssl"`
}

type ChainConf struct {
	Name        string `toml:"name" mapstructure:"name"`
	ChainID     int64  `toml:"chain_id" mapstructure:"chain_id"`
	RPCEndpoint string `toml:"rpc_endpoint" mapstructure:"rpc_endpoint"`
	// 平台收款地址，项目方打款的目标账户
	PlatformWallet string `toml:"platform_wallet" mapstructure:"platform_wallet"`
	PrivateKey     string `toml:"private_key" mapstructure:"private_key"`
	ExplorerBase   string `toml:"explorer_base" mapstructure:"explorer_base"`
	// 确认轮询间隔（秒）与最大轮询次数
	ConfirmIntervalSec int `toml:"confirm_interval_sec" mapstructure:"confirm_interval_sec"`
	MaxConfirmAttempts int `toml:"max_confirm_attempts" mapstructure:"max_confirm_attempts"`
	// 达到多少个区块确认视为finalized
	FinalityBlocks int64 `toml:"finality_blocks" mapstructure:"finality_blocks"`
}

type PricingConf struct {
	// 项目方侧：每条数据的单价，用于从打款金额倒推条目数
	PricePerItem string `toml:"price_per_item" mapstructure:"price_per_item"`
	// 标注员侧：每个任务的固定报酬
	PerTaskRate string `toml:"per_task_rate" mapstructure:"per_task_rate"`
	// 估算交付日期用的日吞吐
	ItemsPerDay  int `toml:"items_per_day" mapstructure:"items_per_day"`
	MaxBatchSize int `toml:"max_batch_size" mapstructure:"max_batch_size"`
}

func (c *ChainConf) ConfirmInterval() time.Duration {
	return time.Duration(c.ConfirmIntervalSec) * time.Second
}

func (p *PricingConf) PricePerItemDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(p.PricePerItem)
	if err != nil {
		return decimal.RequireFromString("0.12")
	}
	return d
}

func (p *PricingConf) PerTaskRateDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(p.PerTaskRate)
	if err != nil {
		return decimal.RequireFromString("0.10")
	}
	return d
}

// UnmarshalConfig 从toml文件加载配置
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath)
	viper.SetConfigType("toml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config file failed")
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Api.Port == "" {
		c.Api.Port = ":9010"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Chain.ConfirmIntervalSec == 0 {
		c.Chain.ConfirmIntervalSec = 3
	}
	if c.Chain.MaxConfirmAttempts == 0 {
		c.Chain.MaxConfirmAttempts = 20
	}
	if c.Chain.FinalityBlocks == 0 {
		c.Chain.FinalityBlocks = 12
	}
	if c.Pricing.PricePerItem == "" {
		c.Pricing.PricePerItem = "0.12"
	}
	if c.Pricing.PerTaskRate == "" {
		c.Pricing.PerTaskRate = "0.10"
	}
	if c.Pricing.ItemsPerDay == 0 {
		c.Pricing.ItemsPerDay = 5000
	}
	if c.Pricing.MaxBatchSize == 0 {
		c.Pricing.MaxBatchSize = 10
	}
}
