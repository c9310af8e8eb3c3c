package config

type NotifyConfig struct {
	FromEmail      string
	RecruiterEmail string
	RecruiterPhone string
	ReviewBaseURL  string
}

func NewNotifyConfig() *NotifyConfig {
	return &NotifyConfig{
		FromEmail:      getEnv("NOTIFY_FROM_EMAIL", ""),
		RecruiterEmail: getEnv("RECRUITER_EMAIL", ""),
		RecruiterPhone: getEnv("RECRUITER_PHONE", ""),
		ReviewBaseURL:  getEnv("REVIEW_BASE_URL", "http://localhost:3000"),
	}
}

func (c *NotifyConfig) EmailEnabled() bool {
	return c.FromEmail != "" && c.RecruiterEmail != ""
}

func (c *NotifyConfig) SMSEnabled() bool {
	return c.RecruiterPhone != ""
}
