package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Content backend (hosted query API)
	CMSProjectID string
	CMSDataset   string
	CMSBaseURL   string // override for tests/self-hosted; empty derives from project id

	// Email delivery
	ResendAPIKey string // empty disables the contact endpoint (500), never crashes startup
	MailFrom     string
	MailTo       string

	// Site
	SiteURL          string
	GTMID            string
	GAMeasurementID  string
	SiteVerification string

	// Contact form verification token
	VerifyTokenPrefix string

	LogFile string
}

func Load() Config {
	// .env is a development convenience; missing file is fine.
	_ = godotenv.Load()

	cfg := Config{
		Port:              getenv("PORT", "8080"),
		CMSProjectID:      getenv("CMS_PROJECT_ID", "tenpak"),
		CMSDataset:        getenv("CMS_DATASET", "production"),
		CMSBaseURL:        os.Getenv("CMS_BASE_URL"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		MailFrom:          getenv("RESEND_FROM_EMAIL", "noreply@tenpak.com"),
		MailTo:            getenv("RESEND_TO_EMAIL", "info@tenpak.com"),
		SiteURL:           getenv("SITE_URL", "https://tenpak.com"),
		GTMID:             os.Getenv("GTM_ID"),
		GAMeasurementID:   os.Getenv("GA_MEASUREMENT_ID"),
		SiteVerification:  os.Getenv("GOOGLE_SITE_VERIFICATION"),
		VerifyTokenPrefix: getenv("VERIFY_TOKEN_PREFIX", "mock-recaptcha-token-"),
		LogFile:           getenv("LOG_FILE", "./tenpak.log"),
	}

	mail := "disabled"
	if cfg.ResendAPIKey != "" {
		mail = "enabled"
	}
	log.Printf("[config] PORT=%s CMS_PROJECT_ID=%s CMS_DATASET=%s SITE_URL=%s mail=%s",
		cfg.Port, cfg.CMSProjectID, cfg.CMSDataset, cfg.SiteURL, mail)
	return cfg
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
