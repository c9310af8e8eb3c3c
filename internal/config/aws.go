package config

type AwsConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

func NewAwsConfig() *AwsConfig {
	return &AwsConfig{
		Region:          getEnv("AWS_REGION", "us-west-2"),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		BucketName:      getEnv("S3_BUCKET_NAME", "maximizehire-uploads-dev"),
	}
}

// HasStaticCredentials reports whether explicit keys were configured
func (c *AwsConfig) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}
