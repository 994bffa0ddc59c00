package siteconfig

// Defaults returns the configuration used until an admin saves the first
// document. Values mirror the stock Lorencia install.
func Defaults() Config {
	var cfg Config

	cfg.General = GeneralConfig{
		SiteName:             "Lorencia MMORPG",
		SiteDescription:      "Fantasy MMORPG Game",
		MaintenanceMessage:   "The site is under maintenance. We will be back soon.",
		AllowRegistration:    true,
		MaxCharactersPerUser: 5,
	}

	cfg.Database = DatabaseConfig{
		Host:     "localhost",
		User:     "lorencia",
		Database: "lorencia",
		Port:     5432,
	}

	cfg.Email = EmailConfig{
		Port: 587,
		From: "noreply@lorencia.com",
	}

	cfg.Credits = CreditsConfig{
		Packages: []CreditPackage{
			{ID: "small", Name: "Starter Pack", Credits: 100, Price: 10.00},
			{ID: "medium", Name: "Adventurer Pack", Credits: 300, Price: 25.00, Popular: true},
			{ID: "large", Name: "Premium Pack", Credits: 700, Price: 50.00},
		},
		CreditsPerUnit: 100,
	}
	cfg.Credits.PaymentMethods.PayPal = true
	cfg.Credits.PaymentMethods.MercadoPago = true
	cfg.Credits.PaymentMethods.CreditCard = true

	cfg.Downloads = DownloadsConfig{
		Files: []DownloadFile{
			{
				ID:   "client",
				Name: "Game Client",
				URL:  "https://storage.lorencia.com/downloads/client.zip",
				Size: "1.2 GB",
				Type: "client",
			},
			{
				ID:   "patch",
				Name: "Update Patch v1.5",
				URL:  "https://storage.lorencia.com/downloads/patch_v1.5.zip",
				Size: "250 MB",
				Type: "patch",
			},
		},
	}
	cfg.Downloads.SystemRequirements.Minimum = map[string]string{
		"OS":   "Windows 7",
		"CPU":  "Pentium 4 700Mhz",
		"RAM":  "512 MB",
		"GPU":  "3D graphics processor, 32 MB",
		"Disk": "2 GB",
	}
	cfg.Downloads.SystemRequirements.Recommended = map[string]string{
		"OS":   "Windows 10",
		"CPU":  "Pentium 4 2.0GHz or better",
		"RAM":  "1 GB or more",
		"GPU":  "3D graphics processor, 128 MB or more",
		"Disk": "4 GB or more",
	}

	cfg.Appearance = AppearanceConfig{
		Logo:           "/logo.png",
		Favicon:        "/favicon.ico",
		PrimaryColor:   "#FFA000",
		SecondaryColor: "#121212",
		HeroImage:      "/hero-banner.jpg",
		FooterText:     "© Lorencia MMORPG. All rights reserved.",
	}

	cfg.Ranking = RankingConfig{
		Enabled:        true,
		UpdateInterval: 15,
		Categories: []RankingCategory{
			{
				ID:    "level",
				Name:  "Top Level",
				Query: "SELECT c.name, c.level, c.class, u.username FROM characters c JOIN users u ON c.user_id = u.id ORDER BY c.level DESC, c.experience DESC",
				Limit: 100,
			},
			{
				ID:    "resets",
				Name:  "Top Resets",
				Query: "SELECT c.name, c.resets, c.level, c.class, u.username FROM characters c JOIN users u ON c.user_id = u.id ORDER BY c.resets DESC, c.level DESC",
				Limit: 100,
			},
		},
	}

	return cfg
}
