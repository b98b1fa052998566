// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Mail    MailConfig    `mapstructure:"mail"`
	Intake  IntakeConfig  `mapstructure:"intake"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// MailConfig selects and configures the outbound mail transport.
// Provider is "smtp" (default) or "ses".
type MailConfig struct {
	Provider string     `mapstructure:"provider"`
	Sender   string     `mapstructure:"sender"`
	SMTP     SMTPConfig `mapstructure:"smtp"`
	SES      SESConfig  `mapstructure:"ses"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

type SESConfig struct {
	Region string `mapstructure:"region"`
}

// IntakeConfig carries the fixed operator and brand identity strings that
// the rendered documents and outbound messages embed. They are deployment
// configuration, not runtime input.
type IntakeConfig struct {
	OperatorInbox      string      `mapstructure:"operator_inbox"`
	BusinessSenderName string      `mapstructure:"business_sender_name"`
	ClientSenderName   string      `mapstructure:"client_sender_name"`
	Brand              BrandConfig `mapstructure:"brand"`
}

type BrandConfig struct {
	ProductName   string `mapstructure:"product_name"`
	EntityName    string `mapstructure:"entity_name"`
	SupportEmail  string `mapstructure:"support_email"`
	Website       string `mapstructure:"website"`
	PostalAddress string `mapstructure:"postal_address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SenderAddress returns the verified account identity messages are sent from.
// Falls back to the SMTP username, which is the account itself for relays
// like Gmail.
func (m MailConfig) SenderAddress() string {
	if m.Sender != "" {
		return m.Sender
	}
	return m.SMTP.Username
}

func validateConfig(cfg *Config) error {
	switch cfg.Mail.Provider {
	case "smtp":
		if cfg.Mail.SMTP.Host == "" {
			return fmt.Errorf("mail.smtp.host is required")
		}
		if cfg.Mail.SMTP.Port <= 0 || cfg.Mail.SMTP.Port > 65535 {
			return fmt.Errorf("mail.smtp.port must be between 1 and 65535")
		}
		if cfg.Mail.SMTP.Username == "" {
			return fmt.Errorf("mail.smtp.username is required")
		}
	case "ses":
		if cfg.Mail.SES.Region == "" {
			return fmt.Errorf("mail.ses.region is required")
		}
		if cfg.Mail.Sender == "" {
			return fmt.Errorf("mail.sender is required for the ses provider")
		}
	default:
		return fmt.Errorf("unsupported mail provider: %s", cfg.Mail.Provider)
	}

	if cfg.Intake.OperatorInbox == "" {
		return fmt.Errorf("intake.operator_inbox is required")
	}
	return nil
}
