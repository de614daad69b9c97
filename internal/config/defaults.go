package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:      8080,
		DataDir:   "data",
		StaticDir: "",
		AllowAll:  false,
		Stripe: StripeConfig{
			Currency: "usd",
			BaseURL:  "https://api.stripe.com/v1",
		},
		Media: MediaConfig{
			GalleryPrefix: "gallery/",
			LogoPublicID:  "branding/logo",
			BaseURL:       "https://api.cloudinary.com/v1_1",
		},
	}
}
