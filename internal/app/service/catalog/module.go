package catalog

import "go.uber.org/fx"

// Module exposes the novel catalog and the gated reader via Fx.
var Module = fx.Options(
	fx.Provide(NewContentStore, NewNovelService, NewReader),
)
