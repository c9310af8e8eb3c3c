package config

type AccessConfig struct {
	// Codes are plain access codes, hashed once at startup
	Codes []string
	// CodeHashes are bcrypt hashes of access codes
	CodeHashes []string
}

func NewAccessConfig() *AccessConfig {
	return &AccessConfig{
		Codes:      getListEnv("ACCESS_CODES"),
		CodeHashes: getListEnv("ACCESS_CODE_HASHES"),
	}
}
