package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	LogPath        string
	Debug          bool
}

func ParseFlags() (cfg Config, err error) {
	// .env is optional; flags still win over environment values
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envString("SURVEY_HOST", "0.0.0.0"), "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", envUint("SURVEY_PORT", 5000), "listen port number (default 5000)")
	var origins string
	flag.StringVar(&origins, "allowed-origins", envString("SURVEY_ALLOWED_ORIGINS", "*"), "comma-separated CORS origins allowed on /v1/* (default *)")
	flag.StringVar(&cfg.LogPath, "log-path", envString("SURVEY_LOG_PATH", "submissions.jsonl"), "path to the append-only submissions log (default submissions.jsonl)")
	flag.BoolVar(&cfg.Debug, "debug", envString("SURVEY_DEBUG", "") != "", "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		err = errors.New("missing parameter -allowed-origins")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envUint(key string, fallback uint) uint {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(value, 10, 16); err == nil {
			return uint(n)
		}
	}
	return fallback
}
