package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI        string
	DatabaseName    string
	Port            string
	GeminiAPIKey    string
	GeminiModel     string
	StylistModelURL string

	ScraperProxyURL  string
	ScraperProxyUser string
	ScraperProxyPass string

	AWSRegion     string
	AWSBucketName string

	DefaultLocale    string
	HeadlessFallback bool
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DatabaseName = os.Getenv("MONGO_DATABASE")
	if DatabaseName == "" {
		DatabaseName = "wearloom"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	GeminiModel = os.Getenv("GEMINI_MODEL")
	if GeminiModel == "" {
		GeminiModel = "gemini-1.5-pro"
	}

	// When set, planning calls go to this local stylist model endpoint
	// instead of the hosted Gemini API.
	StylistModelURL = os.Getenv("STYLIST_MODEL_URL")

	ScraperProxyURL = os.Getenv("SCRAPER_PROXY_URL")
	ScraperProxyUser = os.Getenv("SCRAPER_PROXY_USER")
	ScraperProxyPass = os.Getenv("SCRAPER_PROXY_PASS")

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "us-east-1"
	}
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	DefaultLocale = os.Getenv("DEFAULT_LOCALE")
	if DefaultLocale == "" {
		DefaultLocale = "en-US"
	}

	HeadlessFallback = os.Getenv("ENABLE_HEADLESS_FALLBACK") == "true"
}
