package config

type Config struct {
	IsProd bool   `env:"PROD" envDefault:"false"`
	Listen string `env:"LISTEN" envDefault:":4000"`

	// Upstream services
	APIEndpoint       string `env:"API_ENDPOINT" envDefault:"http://localhost:4001"`
	AnonymousEndpoint string `env:"ANONYMOUS_ENDPOINT" envDefault:"http://localhost:5000"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:5172" envSeparator:","`
}
