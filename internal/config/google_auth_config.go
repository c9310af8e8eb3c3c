package config

type GGAuthConfig struct {
	ClientID       string
	ClientSecret   string
	RedirectURL    string
	ReviewerDomain string
}

func NewGGAuthConfig() *GGAuthConfig {
	return &GGAuthConfig{
		ClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:    getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8082/auth/callback"),
		ReviewerDomain: getEnv("REVIEWER_EMAIL_DOMAIN", ""),
	}
}
