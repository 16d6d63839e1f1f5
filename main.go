package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ticketflowai/ticketflow/config"
	"github.com/ticketflowai/ticketflow/db"
	"github.com/ticketflowai/ticketflow/handlers"
	"github.com/ticketflowai/ticketflow/jobs"
	"github.com/ticketflowai/ticketflow/logger"
	"github.com/ticketflowai/ticketflow/middleware"
	"github.com/ticketflowai/ticketflow/minio"
	"github.com/ticketflowai/ticketflow/pkg/ai"
	"github.com/ticketflowai/ticketflow/pkg/gitlab"
	"github.com/ticketflowai/ticketflow/pkg/jira"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/routes"
	"github.com/ticketflowai/ticketflow/services"
	"github.com/ticketflowai/ticketflow/websocket"
)

func main() {
	config.LoadConfig()
	zl := logger.New()

	middleware.Init()
	db.Init()
	minio.InitMinio()

	generator, err := ai.NewClient(zl)
	if err != nil {
		log.Fatal("Failed to initialise AI client:", err)
	}

	repos := repositories.NewRepos()
	hub := websocket.NewHub(zl)
	svcs := services.NewServices(
		repos,
		generator,
		jira.NewClient(zl),
		gitlab.NewClient(zl),
		hub,
		zl,
	)

	reconciler, err := jobs.NewCron(repos, hub, zl)
	if err != nil {
		log.Fatal("Failed to schedule reconciliation:", err)
	}
	reconciler.Start()
	defer reconciler.Stop()

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	routes.RegisterRoutes(r, handlers.NewContainer(svcs, hub))

	if err := r.Run(":" + config.ServerPort); err != nil {
		log.Fatal("Server error:", err)
	}
}
