package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Printer PrinterConfig
	Output  OutputConfig
	Poll    PollConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Debug bool
}

type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type PrinterConfig struct {
	// Type is "usb", "network" or "none".
	Type    string
	USBPath string
	Address string
}

type OutputConfig struct {
	// Dir receives generated PDF and XLSX files.
	Dir string
}

type PollConfig struct {
	// StockInterval is the cron expression for the stock-alert poll.
	StockInterval string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "boutik")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("OUTPUT_DIR", "./output")
	viper.SetDefault("STOCK_POLL_INTERVAL", "@every 30s")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Token:   viper.GetString("API_TOKEN"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
		Output: OutputConfig{
			Dir: viper.GetString("OUTPUT_DIR"),
		},
		Poll: PollConfig{
			StockInterval: viper.GetString("STOCK_POLL_INTERVAL"),
		},
	}
}
