package core

import (
	"log"

	"liga-api/packages/core/cron"
	"liga-api/packages/core/handlers"
	"liga-api/packages/core/middleware"
	"liga-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	LeagueHandler    *handlers.LeagueHandler
	LeagueService    *services.LeagueService
	MatchHandler     *handlers.MatchHandler
	MatchService     *services.MatchService
	VoteHandler      *handlers.VoteHandler
	VoteService      *services.VoteService
	DuelHandler      *handlers.DuelHandler
	DuelService      *services.DuelService
	RatingService    *services.RatingService
	LifecycleService *services.LifecycleService
	StatsService     *services.StatsService
	Scheduler        *cron.Scheduler
	db               *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	statsProvider := services.NewMembershipStatsProvider(db)
	predictionProvider := services.NewTablePredictionProvider(db)
	notifier := services.NewLogNotifier()

	ratingService := services.NewRatingService(statsProvider, predictionProvider)
	lifecycleService := services.NewLifecycleService(db, ratingService)

	matchService := services.NewMatchService(db, lifecycleService, notifier)
	matchHandler := handlers.NewMatchHandler(matchService, db)

	voteService := services.NewVoteService(db, lifecycleService)
	voteHandler := handlers.NewVoteHandler(voteService, matchHandler)

	duelService := services.NewDuelService(db, statsProvider, notifier)
	duelHandler := handlers.NewDuelHandler(duelService, matchHandler)

	leagueService := services.NewLeagueService(db)
	statsService := services.NewStatsService(db)
	leagueHandler := handlers.NewLeagueHandler(leagueService, statsService)

	scheduler := cron.NewScheduler(lifecycleService)

	return &Module{
		LeagueHandler:    leagueHandler,
		LeagueService:    leagueService,
		MatchHandler:     matchHandler,
		MatchService:     matchService,
		VoteHandler:      voteHandler,
		VoteService:      voteService,
		DuelHandler:      duelHandler,
		DuelService:      duelService,
		RatingService:    ratingService,
		LifecycleService: lifecycleService,
		StatsService:     statsService,
		Scheduler:        scheduler,
		db:               db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	leagues := r.Group("/leagues")
	{
		leagues.POST("", middleware.Identity(), m.LeagueHandler.CreateLeague)
		leagues.GET("/:id/leaderboard", m.LeagueHandler.GetLeaderboard)
		leagues.GET("/:id/stats", m.LeagueHandler.GetLeagueStats)
		leagues.GET("/:id/matches", m.MatchHandler.GetMatches)
		leagues.POST("/:id/matches",
			middleware.Identity(),
			middleware.RequireLeagueRole(m.db, middleware.LeagueFromParam("id"), "owner", "admin"),
			m.MatchHandler.CreateMatch)
	}

	matches := r.Group("/matches")
	{
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.PATCH("/:id/status", middleware.Identity(), m.MatchHandler.UpdateMatchStatus)
		matches.PATCH("/:id/close", middleware.Identity(), m.MatchHandler.CloseMatch)
		matches.PATCH("/:id/cancel", middleware.Identity(), m.MatchHandler.CancelMatch)
		matches.PATCH("/:id/score", middleware.Identity(), m.MatchHandler.RecordScore)
		matches.POST("/:id/roster", middleware.Identity(), m.MatchHandler.ConvenePlayers)
		matches.PATCH("/:id/confirm", middleware.Identity(), m.MatchHandler.ConfirmAttendance)

		matches.POST("/:id/votes", middleware.Identity(), m.VoteHandler.SubmitBallot)
		matches.GET("/:id/votes/progress", middleware.Identity(), m.VoteHandler.GetVotingProgress)
		matches.GET("/:id/comments", m.VoteHandler.GetLockerRoomComments)

		matches.POST("/:id/duel", middleware.Identity(), m.DuelHandler.GenerateDuel)
		matches.GET("/:id/duel", m.DuelHandler.GetDuel)
	}
}

// StartScheduler starts the cron scheduler for the close sweep
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunCloseSweepNow manually triggers the close sweep (useful for testing)
func (m *Module) RunCloseSweepNow() {
	log.Println("Manually triggering close sweep...")
	m.Scheduler.RunNow()
}
