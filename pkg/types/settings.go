package types

// NotificationPrefs selects the channels used for application notifications.
type NotificationPrefs struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	InApp bool `json:"inApp"`
}

// Settings is the single application-wide configuration record. It is stored
// under one fixed key in the key-value store and as one row in the engine's
// settings table.
type Settings struct {
	CompanyName    string            `json:"companyName,omitempty"`
	Currency       string            `json:"currency,omitempty"`
	VatRate        float64           `json:"vatRate,omitempty"`
	FiscalYear     string            `json:"fiscalYear,omitempty"`
	Language       string            `json:"language,omitempty"`
	DriveFolderID  string            `json:"driveFolderId,omitempty"`
	WhatsappAPIKey string            `json:"whatsappApiKey,omitempty"`
	Notifications  NotificationPrefs `json:"notifications"`
}

// DefaultSettings returns the configuration used before any has been saved.
func DefaultSettings() Settings {
	return Settings{
		Currency: "USD",
		VatRate:  0.1,
		Language: "en",
		Notifications: NotificationPrefs{
			Email: true,
			InApp: true,
		},
	}
}
