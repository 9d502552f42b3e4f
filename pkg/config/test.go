package config

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.FrontendURL = "http://localhost:6060"
	cfg.JWTSecret = "test-secret"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}
