// Package videoprovider issues room-join tokens for the external video
// service. The implementation is picked once at startup from configuration;
// when the selected provider has no key material the mock is used instead.
package videoprovider

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/visitlink/visitation-api/internal/core/ports"
)

const (
	ProviderMock    = "mock"
	ProviderLiveKit = "livekit"
	ProviderTwilio  = "twilio"
)

// Config carries the provider selector and credentials for every provider.
type Config struct {
	Provider string

	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	TwilioAccountSID   string
	TwilioAPIKeySID    string
	TwilioAPIKeySecret string
}

// New returns the token provider selected by cfg.Provider.
func New(cfg Config, log zerolog.Logger) ports.TokenProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderLiveKit:
		if cfg.LiveKitAPIKey == "" || cfg.LiveKitAPISecret == "" {
			log.Warn().Str("provider", ProviderLiveKit).Msg("credentials missing, falling back to mock tokens")
			return NewMock()
		}
		return NewLiveKit(cfg.LiveKitAPIKey, cfg.LiveKitAPISecret)
	case ProviderTwilio:
		if cfg.TwilioAccountSID == "" || cfg.TwilioAPIKeySID == "" || cfg.TwilioAPIKeySecret == "" {
			log.Warn().Str("provider", ProviderTwilio).Msg("credentials missing, falling back to mock tokens")
			return NewMock()
		}
		return NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAPIKeySID, cfg.TwilioAPIKeySecret)
	case ProviderMock, "":
		return NewMock()
	default:
		log.Warn().Str("provider", cfg.Provider).Msg("unknown video provider, using mock tokens")
		return NewMock()
	}
}
