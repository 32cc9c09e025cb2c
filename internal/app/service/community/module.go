package community

import "go.uber.org/fx"

// Module exposes authors, follows, favorites and notifications via Fx.
var Module = fx.Options(
	fx.Provide(
		NewAuthorService,
		NewFollowService,
		NewFavoriteService,
		NewNotificationService,
	),
)
