package main

import (
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/timeright/go/internal/auth"
	"github.com/mcdev12/timeright/go/internal/game"
	"github.com/mcdev12/timeright/go/internal/leaderboard"
	"github.com/mcdev12/timeright/go/internal/store"
)

type Services struct {
	Auth        *auth.Service
	Game        *game.Service
	Leaderboard *leaderboard.Service
	Janitor     *game.Janitor
	Middleware  *auth.Middleware
}

func setupServices(cfg *Config, clock clockwork.Clock) *Services {
	// Wire up dependency injection chain
	// Store layer → App layer → Service layer
	st := store.New(clock)

	authApp := auth.NewApp(st, clock, []byte(cfg.JWTSecret), cfg.TokenTTL)
	gameApp := game.NewApp(st, clock)
	leaderboardApp := leaderboard.NewApp(st)

	return &Services{
		Auth:        auth.NewService(authApp),
		Game:        game.NewService(gameApp),
		Leaderboard: leaderboard.NewService(leaderboardApp),
		Janitor:     game.NewJanitor(gameApp, clock, cfg.JanitorInterval),
		Middleware:  auth.NewMiddleware(authApp),
	}
}
