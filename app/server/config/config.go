package config

type Config struct {
	System struct {
		IsProd                  bool     `env:"PROD" envDefault:"false"`          // production mode: JSON logs, secure cross-site cookies
		Listen                  string   `env:"LISTEN" envDefault:":4000"`        // listen address
		DBConnectionString      string   `env:"DB_CONN,required"`                 // Postgres connection string (users, lost items, donors)
		MongoConnectionString   string   `env:"MONGO_CONN,required"`              // MongoDB connection string (societies, events, marketplace, feedback)
		MongoDatabase           string   `env:"MONGO_DB" envDefault:"campus"`     // MongoDB database name
		RedisConnectionString   string   `env:"REDIS_CONN,required"`              // Redis connection string (dashboard counts cache)
		CORSOrigins             []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:4000" envSeparator:","`
		FirebaseCredentialsFile string   `env:"FIREBASE_CREDENTIALS"` // service account JSON; empty falls back to application default credentials
	}
	Security struct {
		SignatureSecretKey string `env:"SIGNATURE_SECRET_KEY,required"` // signing key for session tokens; rotating it invalidates existing sessions
		// Sign-in domain policy: the email domain required at sign-in.
		// Checked once, at sign-in, not on every request.
		RequiredDomain string `env:"REQUIRED_DOMAIN" envDefault:"iut-dhaka.edu"`
		// Administrator allowlist, immutable for the process lifetime.
		// Injected here rather than hardcoded so tests can swap it.
		AdministratorEmails []string `env:"ADMINISTRATOR_EMAILS" envDefault:"ridwankhan@iut-dhaka.edu" envSeparator:","`
	}
}
