package entitlement

import (
	"go.uber.org/fx"

	"github.com/phamdangkhoamet/dkstory/pkg/config"
)

func newGate(cfg *config.Config) *Gate {
	return NewGate(cfg != nil && cfg.Entitlement.CheckExpiry)
}

// Module exposes the reader gate via Fx.
var Module = fx.Options(
	fx.Provide(newGate),
)
