package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env     string `yaml:"env" env-default:"local"`
	LogPath string `yaml:"log_path" env-default:"logs"`
	Gemini  struct {
		ApiKey    string `yaml:"api_key" env-default:""`
		BaseURL   string `yaml:"base_url" env-default:"https://generativelanguage.googleapis.com/v1beta/openai/"`
		Model     string `yaml:"model" env-default:"gemini-2.0-flash"`
		Timeout   int    `yaml:"timeout_seconds" env-default:"60"`
		Attempts  int    `yaml:"attempts" env-default:"3"`
		MaxTokens int    `yaml:"max_output_tokens" env-default:"1024"`
	} `yaml:"gemini"`
	Mongo struct {
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:"techassist"`
	} `yaml:"mongo"`
	Selector struct {
		DumpLimit      int   `yaml:"dump_limit" env-default:"500"`
		MaxSelection   int   `yaml:"max_selection" env-default:"5"`
		RelevanceScale int   `yaml:"relevance_scale" env-default:"100"`
		PromotionBase  int   `yaml:"promotion_base" env-default:"50"`
		PromotionCap   int   `yaml:"promotion_cap" env-default:"30"`
		StockBase      int   `yaml:"stock_base" env-default:"20"`
		StockCap       int   `yaml:"stock_cap" env-default:"10"`
		HighPriceCut   int64 `yaml:"high_price_cut" env-default:"50000000"`
		LowPriceCut    int64 `yaml:"low_price_cut" env-default:"10000"`
		KeepUnmatched  bool  `yaml:"keep_unmatched" env-default:"true"`
	} `yaml:"selector"`
	Composer struct {
		PauseMs int `yaml:"pause_ms" env-default:"500"`
	} `yaml:"composer"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
