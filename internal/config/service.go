package config

type ServiceConfig struct {
	Name        string         `yaml:"name"`
	Environment string         `yaml:"environment"`
	ClientURL   string         `yaml:"client_url"`
	StateSecret string         `yaml:"state_secret"`
	Stripe      StripeConfig   `yaml:"stripe"`
	Supabase    SupabaseConfig `yaml:"supabase"`
}

type StripeConfig struct {
	SecretKey       string `yaml:"secret_key"`
	ConnectClientID string `yaml:"connect_client_id"`
	RedirectURL     string `yaml:"redirect_url"`
	// Scope requested during Connect OAuth; read_only is enough for revenue verification.
	Scope string `yaml:"scope"`
}

type SupabaseConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}
