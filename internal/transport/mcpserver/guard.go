package mcpserver

import (
	"context"
	"fmt"
	"os"

	"surety/internal/domain/settings"
)

const EnvEnabled = "SURETY_MCP_ENABLED"

type SettingLookup interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
}

// Guard decides per call whether tools may read data. The environment
// override is consulted first and is read on every call.
type Guard struct {
	settings    SettingLookup
	getenv      func(string) string
	settingsURL string
}

func NewGuard(lookup SettingLookup, settingsURL string) *Guard {
	return &Guard{settings: lookup, getenv: os.Getenv, settingsURL: settingsURL}
}

func (g *Guard) Enabled(ctx context.Context) (bool, error) {
	if g.getenv(EnvEnabled) == "true" {
		return true, nil
	}
	value, ok, err := g.settings.Lookup(ctx, settings.KeyMCPEnabled)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}

func (g *Guard) DisabledMessage() string {
	return fmt.Sprintf("MCP access is disabled. To enable it, open the Surety settings page at %s and turn on the MCP Access toggle.", g.settingsURL)
}
