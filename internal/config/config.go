package config

import (
	"os"
	"strconv"
)

// GitHubConfig holds the coordinates of the website repository that every
// edit is committed to, plus the credentials to reach it.
type GitHubConfig struct {
	Owner  string
	Repo   string
	Branch string
	Token  string
	// APIBaseURL overrides the API endpoint; tests point it at a local server.
	APIBaseURL string
	// RawContentBaseURL is the public raw-content host used to build
	// absolute URLs for committed attachments. Derived from owner/repo/branch
	// when left empty.
	RawContentBaseURL string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port string
	// PublicBaseURL is the deployed website origin. Freshly committed assets
	// are not served under their site-relative path until the next deploy,
	// so responses also carry an absolute URL built from this base.
	PublicBaseURL string
	// AdminToken is the shared credential behind the login check and the
	// mutating routes.
	AdminToken string
	// CORSEnabled toggles the permissive CORS layer the browser console needs.
	CORSEnabled bool
	GitHub      GitHubConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:          getEnv("PORT", "8080"), // default only for non-sensitive value
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		AdminToken:    getEnv("ADMIN_TOKEN", ""),
		CORSEnabled:   getEnvBool("CORS_ENABLED", true),
		GitHub: GitHubConfig{
			Owner:             getEnv("GITHUB_OWNER", ""),
			Repo:              getEnv("GITHUB_REPO", ""),
			Branch:            getEnv("GITHUB_BRANCH", "main"),
			Token:             getEnv("GITHUB_TOKEN", ""),
			APIBaseURL:        getEnv("GITHUB_API_BASE", ""),
			RawContentBaseURL: getEnv("RAW_CONTENT_BASE_URL", ""),
		},
	}
}

// RawContentBase resolves the raw-content host for the configured
// repository, honoring the explicit override.
func (g GitHubConfig) RawContentBase() string {
	if g.RawContentBaseURL != "" {
		return g.RawContentBaseURL
	}
	return "https://raw.githubusercontent.com/" + g.Owner + "/" + g.Repo + "/" + g.Branch
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
