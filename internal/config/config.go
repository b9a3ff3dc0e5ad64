package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Host, User, Password, DBName, SSLMode string
	Port                                  int
}

type SMTPConfig struct {
	Host, Username, Password, From string
	Port                           int
}

type Config struct {
	WebHost   string
	WebPort   int
	JWTSecret string
	RedisAddr string
	DB        DBConfig
	SMTP      SMTPConfig
}

// MailEnabled reports whether decision emails should go out.
func (c Config) MailEnabled() bool { return c.SMTP.Host != "" && c.SMTP.From != "" }

// RedisEnabled reports whether events fan out through redis pub/sub.
func (c Config) RedisEnabled() bool { return c.RedisAddr != "" }

func Load() (Config, error) {
	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", 8080)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("smtp.port", 587)

	_ = viper.ReadInConfig() // ignore missing config file

	c := Config{
		WebHost:   viper.GetString("web.host"),
		WebPort:   viper.GetInt("web.port"),
		JWTSecret: viper.GetString("jwt_secret"),
		RedisAddr: viper.GetString("redis.addr"),
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			Username: viper.GetString("smtp.username"),
			Password: viper.GetString("smtp.password"),
			From:     viper.GetString("smtp.from"),
		},
	}

	// env vars win over the config file
	if v := os.Getenv("LOSTFOUND_DB_HOST"); v != "" {
		c.DB.Host = v
	}
	if v := os.Getenv("LOSTFOUND_DB_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOSTFOUND_DB_PORT %q: %w", v, err)
		}
		c.DB.Port = p
	}
	if v := os.Getenv("LOSTFOUND_DB_USER"); v != "" {
		c.DB.User = v
	}
	if v := os.Getenv("LOSTFOUND_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("LOSTFOUND_DB_NAME"); v != "" {
		c.DB.DBName = v
	}
	if v := os.Getenv("LOSTFOUND_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("LOSTFOUND_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("LOSTFOUND_WEB_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOSTFOUND_WEB_PORT %q: %w", v, err)
		}
		c.WebPort = p
	}

	if c.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt_secret is required")
	}
	return c, nil
}
