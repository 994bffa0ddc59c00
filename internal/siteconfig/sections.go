package siteconfig

import (
	"errors"
	"fmt"
	"regexp"
)

// Config is the whole site configuration document.
type Config struct {
	General    GeneralConfig    `json:"general"`
	Database   DatabaseConfig   `json:"database"`
	Email      EmailConfig      `json:"email"`
	Credits    CreditsConfig    `json:"credits"`
	Downloads  DownloadsConfig  `json:"downloads"`
	Appearance AppearanceConfig `json:"appearance"`
	Ranking    RankingConfig    `json:"ranking"`
}

// GeneralConfig holds site-wide toggles shown on the general admin form.
type GeneralConfig struct {
	SiteName                 string `json:"siteName"`
	SiteDescription          string `json:"siteDescription"`
	MaintenanceMode          bool   `json:"maintenanceMode"`
	MaintenanceMessage       string `json:"maintenanceMessage"`
	AllowRegistration        bool   `json:"allowRegistration"`
	RequireEmailVerification bool   `json:"requireEmailVerification"`
	MaxCharactersPerUser     int    `json:"maxCharactersPerUser"`
}

func (c *GeneralConfig) Validate() error {
	if c.SiteName == "" {
		return errors.New("site name is required")
	}
	if c.MaxCharactersPerUser <= 0 {
		return errors.New("max characters per user must be positive")
	}
	return nil
}

// DatabaseConfig mirrors the admin database form. It is informational: the
// live connection is established at startup from the bootstrap config, and
// saving this section only updates the document for the next restart.
type DatabaseConfig struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	Port     int    `json:"port"`
}

func (c *DatabaseConfig) Validate() error {
	if c.Host == "" || c.User == "" || c.Database == "" {
		return errors.New("host, user and database are required")
	}
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

// EmailConfig holds the SMTP settings used for outbound portal mail.
type EmailConfig struct {
	Server   string `json:"server"`
	Port     int    `json:"port"`
	Secure   bool   `json:"secure"`
	User     string `json:"user"`
	Password string `json:"password"`
	From     string `json:"from"`
}

func (c *EmailConfig) Validate() error {
	if c.Server == "" || c.User == "" {
		return errors.New("server and user are required")
	}
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

// CreditPackage is a purchasable bundle shown on the credits page.
type CreditPackage struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Credits int64   `json:"credits"`
	Price   float64 `json:"price"`
	Popular bool    `json:"popular,omitempty"`
}

// CreditsConfig holds purchasable packages, enabled payment methods and the
// conversion rate applied when a provider reports only a captured amount.
type CreditsConfig struct {
	Packages       []CreditPackage `json:"packages"`
	PaymentMethods struct {
		PayPal      bool `json:"paypal"`
		MercadoPago bool `json:"mercadopago"`
		CreditCard  bool `json:"creditCard"`
	} `json:"paymentMethods"`

	// CreditsPerUnit converts a captured payment amount into credits when a
	// webhook does not reference a known package (credits = floor(amount * rate)).
	CreditsPerUnit float64 `json:"creditsPerUnit"`
}

func (c *CreditsConfig) Validate() error {
	if len(c.Packages) == 0 {
		return errors.New("at least one credit package is required")
	}
	for _, p := range c.Packages {
		if p.ID == "" || p.Name == "" {
			return errors.New("package id and name are required")
		}
		if p.Credits <= 0 || p.Price <= 0 {
			return fmt.Errorf("package %q: credits and price must be positive", p.ID)
		}
	}
	if c.CreditsPerUnit <= 0 {
		return errors.New("credits per unit must be positive")
	}
	return nil
}

// Package returns the credit package with the given id.
func (c CreditsConfig) Package(id string) (CreditPackage, bool) {
	for _, p := range c.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return CreditPackage{}, false
}

// DownloadFile is one downloadable artifact (client, patch, launcher).
type DownloadFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size string `json:"size"`
	Type string `json:"type"`
}

// DownloadsConfig holds the download list and the system requirement tables.
type DownloadsConfig struct {
	Files              []DownloadFile `json:"files"`
	SystemRequirements struct {
		Minimum     map[string]string `json:"minimum"`
		Recommended map[string]string `json:"recommended"`
	} `json:"systemRequirements"`
}

func (c *DownloadsConfig) Validate() error {
	for _, f := range c.Files {
		if f.ID == "" || f.Name == "" || f.URL == "" {
			return errors.New("download file id, name and url are required")
		}
	}
	return nil
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// AppearanceConfig holds branding assets consumed by the front end.
type AppearanceConfig struct {
	Logo           string `json:"logo"`
	Favicon        string `json:"favicon"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	HeroImage      string `json:"heroImage"`
	FooterText     string `json:"footerText"`
}

func (c *AppearanceConfig) Validate() error {
	if !hexColorRe.MatchString(c.PrimaryColor) || !hexColorRe.MatchString(c.SecondaryColor) {
		return errors.New("colors must be #RRGGBB")
	}
	return nil
}

// RankingCategory defines one leaderboard: the SQL query producing it and
// the row cap applied when the snapshot is generated.
type RankingCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// RankingConfig controls the periodic leaderboard snapshot.
type RankingConfig struct {
	Enabled bool `json:"enabled"`

	// UpdateInterval is the regeneration period in minutes.
	UpdateInterval int `json:"updateInterval"`

	Categories []RankingCategory `json:"categories"`
}

func (c *RankingConfig) Validate() error {
	if c.UpdateInterval <= 0 {
		return errors.New("update interval must be positive")
	}
	for _, cat := range c.Categories {
		if cat.ID == "" || cat.Query == "" {
			return errors.New("ranking category id and query are required")
		}
		if cat.Limit <= 0 {
			return fmt.Errorf("ranking category %q: limit must be positive", cat.ID)
		}
	}
	return nil
}
