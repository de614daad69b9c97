package config

// Config is the top-level caterserve configuration, corresponding to .caterserve.yml.
type Config struct {
	Port      int          `yaml:"port" koanf:"port"`
	DataDir   string       `yaml:"data_dir" koanf:"data_dir"`
	StaticDir string       `yaml:"static_dir" koanf:"static_dir"`
	AllowAll  bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Stripe    StripeConfig `yaml:"stripe" koanf:"stripe"`
	Media     MediaConfig  `yaml:"media" koanf:"media"`
}

// StripeConfig holds the card-terminal provider settings.
type StripeConfig struct {
	SecretKey  string `yaml:"secret_key" koanf:"secret_key"`
	LocationID string `yaml:"location_id" koanf:"location_id"`
	Currency   string `yaml:"currency" koanf:"currency"`
	BaseURL    string `yaml:"base_url" koanf:"base_url"`
}

// MediaConfig holds the media-library (Cloudinary) settings.
type MediaConfig struct {
	CloudName     string `yaml:"cloud_name" koanf:"cloud_name"`
	APIKey        string `yaml:"api_key" koanf:"api_key"`
	APISecret     string `yaml:"api_secret" koanf:"api_secret"`
	GalleryPrefix string `yaml:"gallery_prefix" koanf:"gallery_prefix"`
	LogoPublicID  string `yaml:"logo_public_id" koanf:"logo_public_id"`
	BaseURL       string `yaml:"base_url" koanf:"base_url"`
}
