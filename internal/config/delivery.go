package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DeliveryConfig holds the customer-facing delivery copy (SMS body, email
// subject) so venues can adjust wording without a redeploy.
type DeliveryConfig struct {
	SMSTemplate   string `mapstructure:"smsTemplate"`
	EmailSubject  string `mapstructure:"emailSubject"`
	EmailFromName string `mapstructure:"emailFromName"`
}

func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		SMSTemplate:   "Your ticket for {{event}} is confirmed! Your ticket code is: {{code}}.",
		EmailSubject:  "Your ticket for {{event}}",
		EmailFromName: "Passgate Tickets",
	}
}

type DeliveryConfigHolder struct {
	current atomic.Value // holds DeliveryConfig
}

func NewDeliveryConfigHolder(log *zap.Logger) (*DeliveryConfigHolder, error) {
	log = log.Named("config.delivery")
	v := viper.New()

	v.SetConfigName("delivery")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/passgate/config")
	v.AddConfigPath("/etc/passgate")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PASSGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultDeliveryConfig()
		v.SetDefault("delivery.smsTemplate", defaults.SMSTemplate)
		v.SetDefault("delivery.emailSubject", defaults.EmailSubject)
		v.SetDefault("delivery.emailFromName", defaults.EmailFromName)
	}

	var cfg DeliveryConfig
	if err := v.UnmarshalKey("delivery", &cfg); err != nil {
		return nil, err
	}
	if err := validateDeliveryConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DeliveryConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DeliveryConfig
		if err := v.UnmarshalKey("delivery", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateDeliveryConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticDeliveryConfigHolder wraps a fixed config, bypassing the file
// watcher. Used by tests.
func NewStaticDeliveryConfigHolder(cfg DeliveryConfig) *DeliveryConfigHolder {
	holder := &DeliveryConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *DeliveryConfigHolder) Get() DeliveryConfig {
	return h.current.Load().(DeliveryConfig)
}

// Render substitutes {{event}} and {{code}} placeholders in a template.
func (c DeliveryConfig) Render(template, eventName, ticketCode string) string {
	out := strings.ReplaceAll(template, "{{event}}", eventName)
	return strings.ReplaceAll(out, "{{code}}", ticketCode)
}

func validateDeliveryConfig(cfg DeliveryConfig) error {
	if strings.TrimSpace(cfg.SMSTemplate) == "" {
		return errors.New("delivery.smsTemplate cannot be empty")
	}
	if !strings.Contains(cfg.SMSTemplate, "{{code}}") {
		return errors.New("delivery.smsTemplate must contain the {{code}} placeholder")
	}
	if strings.TrimSpace(cfg.EmailSubject) == "" {
		return errors.New("delivery.emailSubject cannot be empty")
	}
	return nil
}
