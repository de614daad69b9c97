package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .caterserve.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to caterserve! Let's configure your site backend.")
	fmt.Println()

	cfg := DefaultConfig()

	portPrompt := promptui.Prompt{
		Label:   "Port to listen on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	dataPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	staticPrompt := promptui.Prompt{
		Label:   "Front-end build directory (leave blank to skip)",
		Default: cfg.StaticDir,
	}
	if cfg.StaticDir, err = staticPrompt.Run(); err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}

	terminalPrompt := promptui.Select{
		Label: "Enable the card-payment terminal proxy?",
		Items: []string{"no", "yes"},
	}
	terminalIdx, _, err := terminalPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("terminal selection: %w", err)
	}
	if terminalIdx == 1 {
		keyPrompt := promptui.Prompt{
			Label: "Payment provider secret key",
			Mask:  '*',
		}
		if cfg.Stripe.SecretKey, err = keyPrompt.Run(); err != nil {
			return nil, fmt.Errorf("secret key: %w", err)
		}
		locPrompt := promptui.Prompt{
			Label: "Terminal location ID (leave blank to register readers later)",
		}
		if cfg.Stripe.LocationID, err = locPrompt.Run(); err != nil {
			return nil, fmt.Errorf("location id: %w", err)
		}
	}

	mediaPrompt := promptui.Select{
		Label: "Enable the media library proxy?",
		Items: []string{"no", "yes"},
	}
	mediaIdx, _, err := mediaPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("media selection: %w", err)
	}
	if mediaIdx == 1 {
		cloudPrompt := promptui.Prompt{Label: "Media cloud name"}
		if cfg.Media.CloudName, err = cloudPrompt.Run(); err != nil {
			return nil, fmt.Errorf("cloud name: %w", err)
		}
		keyPrompt := promptui.Prompt{Label: "Media API key"}
		if cfg.Media.APIKey, err = keyPrompt.Run(); err != nil {
			return nil, fmt.Errorf("api key: %w", err)
		}
		secretPrompt := promptui.Prompt{
			Label: "Media API secret",
			Mask:  '*',
		}
		if cfg.Media.APISecret, err = secretPrompt.Run(); err != nil {
			return nil, fmt.Errorf("api secret: %w", err)
		}
		prefixPrompt := promptui.Prompt{
			Label:   "Gallery folder prefix",
			Default: cfg.Media.GalleryPrefix,
		}
		if cfg.Media.GalleryPrefix, err = prefixPrompt.Run(); err != nil {
			return nil, fmt.Errorf("gallery prefix: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath := ".caterserve.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
