package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/lineplanner/pkg/api/routes"
)

func NewApp() *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	group.Get("stats", routes.Stats)

	routes.StationsRouter(group.Group("/stations"))

	routes.TripsRouter(group.Group("/trips"))

	routes.FaresRouter(group.Group("/fares"))
	routes.TravelTimeRouter(group.Group("/travel_time"))

	routes.RealtimeRouter(group.Group("/realtime"))

	return webApp
}

func SetupServer(listen string) error {
	return NewApp().Listen(listen)
}
