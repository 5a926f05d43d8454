// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/golfdraft-io/golfdraft/internal/draft"
	"github.com/golfdraft-io/golfdraft/internal/handlers"
	"github.com/golfdraft-io/golfdraft/internal/middleware"
	"github.com/golfdraft-io/golfdraft/internal/remote"
	"github.com/golfdraft-io/golfdraft/internal/store"
	draftsync "github.com/golfdraft-io/golfdraft/internal/sync"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Persistence is optional: without redis the draft simply runs
	// without surviving restarts.
	var st draftsync.Store
	if err := store.ConnectRedis(); err != nil {
		logger.Warnf("Redis unavailable, running without persistence: %v", err)
	} else {
		st = store.NewRedisStore()
	}

	tournament := getEnv("TOURNAMENT", "Masters")
	d := draft.NewDraft(tournament, 4, draft.FormatSnake)
	d.SeedPlayers(draft.DefaultPool())

	// A remote authority is in play only when configured.
	var auth draftsync.Authority
	if apiURL := os.Getenv("REMOTE_API_URL"); apiURL != "" {
		auth = remote.NewClient(
			apiURL,
			getEnv("REMOTE_WS_URL", ""),
			os.Getenv("REMOTE_DRAFT_ID"),
			getEnv("USER_ID", "local-operator"),
			logger,
		)
	}

	coord := draftsync.NewCoordinator(d, st, auth, logger)

	// The server attaches the coordinator's state/status hooks, so it
	// must exist before Start spawns the remote push watcher.
	srv := handlers.NewDraftServer(coord, logger)

	// Restore and sync before listening so the first render reflects
	// the recovered draft.
	coord.Start(context.Background())

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	mux.Handle("/draft/state", logged(handlers.GetStateHandler(srv)))
	mux.Handle("/draft/players", logged(handlers.ListPlayersHandler(srv)))
	mux.Handle("/draft/players/add", logged(handlers.AddPlayerHandler(srv)))
	mux.Handle("/draft/pick", logged(handlers.SubmitPickHandler(srv)))
	mux.Handle("/draft/start", logged(handlers.StartDraftHandler(srv)))
	mux.Handle("/draft/reset", logged(handlers.ResetBoardHandler(srv)))
	mux.Handle("/draft/format", logged(handlers.SetFormatHandler(srv)))
	mux.Handle("/draft/teams/count", logged(handlers.SetTeamCountHandler(srv)))
	mux.Handle("/draft/teams/rename", logged(handlers.RenameTeamHandler(srv)))
	mux.Handle("/draft/scores", logged(handlers.SetScoreHandler(srv)))
	mux.Handle("/draft/scores/import", logged(handlers.ImportScoresHandler(srv)))
	mux.Handle("/draft/history", logged(handlers.HistoryHandler(srv)))

	mux.Handle("/draft/ws", logged(handlers.DraftWSHandler(logger, srv)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
