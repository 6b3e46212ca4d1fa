package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName               string
		Env                   string // DEV (local; default), TEST, QA, PROD
		Build                 string
		Debug                 bool
		TestMode              bool
		SecretKey             string
		DefaultFromEmail      string
		FrontendBaseURL       string
		RollbarToken          string
		SendgridAPIKey        string
		LoginLinkTimeoutDelta time.Duration
		AdminEmail            string
		DiscordURL            string
		SupportPhone          string

		Server   ServerConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		CookieSecure       bool
		DisableReqLogs     bool
	}

	DatabaseConfig struct {
		Engine        string // postgres | inmem
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

// Address returns the "host:port" of the database server.
func (dc DatabaseConfig) Address() string {
	return net.JoinHostPort(dc.Host, dc.Port)
}

// DefaultFrom parses DefaultFromEmail, falling back to a bare address named after the app.
func (c *Config) DefaultFrom() mail.Address {
	if addr, err := mail.ParseAddress(c.DefaultFromEmail); err == nil {
		if addr.Name == "" {
			addr.Name = c.AppName
		}
		return *addr
	}
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}

// SupportURL is the WhatsApp link built from SupportPhone.
func (c *Config) SupportURL() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.SupportPhone)
	return "https://wa.me/" + digits
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "AxelScale")
	v.SetDefault("secretKey", "8x$k2q!m-l0v3+r3v3nt4_0nl1n3#a9^zz(c7w&e1t)4y")
	v.SetDefault("defaultFromEmail", "AxelScale <noreply@axelscale.com>")
	v.SetDefault("frontendBaseURL", "http://localhost:8000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")
	v.SetDefault("loginLinkTimeoutDelta", 30*time.Minute)
	v.SetDefault("adminEmail", "admin@axelscale.com")
	v.SetDefault("discordURL", "https://discord.gg/dESsRhG3")
	v.SetDefault("supportPhone", "+34 626 04 06 64")

	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.cookieSecure", false)
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "axelscale")
	v.SetDefault("database.user", "axelscale")
	v.SetDefault("database.password", "axelscale")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
}

// NewConfig loads the configuration for the current ENV.
// Values are read from "<ENV>_<KEY>" environment variables, e.g. DEV_SERVER_HOST,
// optionally seeded by a "config/.env.<env>" file in the working directory.
func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	return &Config{
		AppName:               v.GetString("appName"),
		Env:                   env,
		Build:                 v.GetString("build"),
		Debug:                 v.GetBool("debug"),
		TestMode:              v.GetBool("testMode"),
		SecretKey:             v.GetString("secretKey"),
		DefaultFromEmail:      v.GetString("defaultFromEmail"),
		FrontendBaseURL:       strings.TrimRight(v.GetString("frontendBaseURL"), "/"),
		RollbarToken:          v.GetString("rollbarToken"),
		SendgridAPIKey:        v.GetString("sendgridAPIKey"),
		LoginLinkTimeoutDelta: v.GetDuration("loginLinkTimeoutDelta"),
		AdminEmail:            CleanString(v.GetString("adminEmail"), true /* lower */),
		DiscordURL:            v.GetString("discordURL"),
		SupportPhone:          v.GetString("supportPhone"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
			CookieSecure:       v.GetBool("server.cookieSecure"),
			DisableReqLogs:     v.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
	}
}
