package config

type App struct {
	Port            string `yaml:"port" env:"APP_PORT" default:"8080"`
	DatabaseURL     string `yaml:"database_url" env:"DATABASE_URL,required"`
	JWTSecret       string `yaml:"jwt_secret" env:"JWT_SECRET"`
	AdminEmail      string `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword   string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
	PayoutBaseURL   string `yaml:"payout_base_url" env:"PAYOUT_BASE_URL"`
	PayoutAPIKey    string `yaml:"payout_api_key" env:"PAYOUT_API_KEY"`
	PayoutCallback  string `yaml:"payout_callback_token" env:"PAYOUT_CALLBACK_TOKEN"`
	IdempotencyPath string `yaml:"idempotency_path" env:"IDEMPOTENCY_PATH" default:"webhook-events.db"`
	Env             string `yaml:"env" env:"APP_ENV" default:"dev"`
}
