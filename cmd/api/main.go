package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"lokaserve/internal/config"
	"lokaserve/internal/db"
	"lokaserve/internal/geo"
	"lokaserve/internal/handlers"
	"lokaserve/internal/middleware"
	"lokaserve/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	// Redis-backed geo index when configured, process-local otherwise.
	var index geo.Index
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis unreachable: ", err)
		}
		index = geo.NewRedisIndex(rdb)
		log.Printf("geo index: redis (%s)", cfg.RedisAddr)
	} else {
		index = geo.NewMemoryIndex()
		log.Println("geo index: in-memory")
	}

	bookingSvc := services.NewBookingService(gdb)
	availabilitySvc := services.NewAvailabilityService(gdb)
	reviewSvc := services.NewReviewService(gdb)
	searchSvc := services.NewSearchService(gdb, index)
	categorySvc := services.NewCategoryService(gdb)
	providerSvc := services.NewProviderService(gdb, index)
	userSvc := services.NewUserService(gdb)
	dashboardSvc := services.NewDashboardService(gdb)

	n, err := searchSvc.SeedIndex(context.Background())
	if err != nil {
		log.Fatal("geo index seed: ", err)
	}
	log.Printf("geo index seeded with %d providers", n)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	categoryH := handlers.NewCategoryHandler(categorySvc)
	searchH := handlers.NewSearchHandler(searchSvc, providerSvc)
	bookingH := handlers.NewBookingHandler(bookingSvc)
	availabilityH := handlers.NewAvailabilityHandler(availabilitySvc)
	reviewH := handlers.NewReviewHandler(reviewSvc)
	providerH := handlers.NewProviderHandler(providerSvc, dashboardSvc)
	adminH := handlers.NewAdminHandler(userSvc, providerSvc, dashboardSvc)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/categories", categoryH.List)

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)
	protected.Get("/me", authH.Me)

	// customer surface
	customer := protected.Group("/customers", middleware.RequireRoles("customer", "admin"))
	customer.Get("/providers/search", searchH.SearchProviders)
	customer.Get("/providers/:id", searchH.GetProviderProfile)
	customer.Post("/bookings", bookingH.Create)
	customer.Get("/bookings", bookingH.ListMine)
	customer.Get("/bookings/:id", bookingH.GetMine)
	customer.Patch("/bookings/:id/cancel", bookingH.Cancel)
	customer.Post("/reviews", reviewH.Create)
	customer.Get("/reviews", reviewH.ListMine)

	// provider surface; every route resolves the profile binding first
	provider := protected.Group("/providers",
		middleware.RequireRoles("provider"),
		middleware.LoadProviderProfile(gdb),
	)
	provider.Get("/profile", providerH.GetProfile)
	provider.Put("/profile", providerH.UpdateProfile)
	provider.Get("/dashboard", providerH.Dashboard)
	provider.Get("/availability", availabilityH.List)
	provider.Post("/availability", availabilityH.Create)
	provider.Put("/availability/:id", availabilityH.Update)
	provider.Delete("/availability/:id", availabilityH.Delete)
	provider.Get("/bookings", bookingH.ListForProvider)
	provider.Get("/bookings/:id", bookingH.GetForProvider)
	provider.Patch("/bookings/:id/accept", bookingH.Accept)
	provider.Patch("/bookings/:id/reject", bookingH.Reject)
	provider.Patch("/bookings/:id/reschedule", bookingH.Reschedule)
	provider.Patch("/bookings/:id/complete", bookingH.Complete)
	provider.Get("/reviews", reviewH.ListForProvider)

	// admin surface
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/dashboard", adminH.Dashboard)
	admin.Get("/users", adminH.ListUsers)
	admin.Get("/users/:id", adminH.GetUser)
	admin.Put("/users/:id/role", adminH.SetUserRole)
	admin.Put("/users/:id/status", adminH.SetUserStatus)
	admin.Get("/providers/pending", adminH.ListPendingProviders)
	admin.Put("/providers/:id/verify", adminH.SetProviderVerified)
	admin.Get("/bookings", adminH.ListBookings)
	admin.Get("/bookings/:id", adminH.GetBooking)
	admin.Post("/categories", categoryH.Create)
	admin.Put("/categories/:id", categoryH.Update)
	admin.Delete("/categories/:id", categoryH.Delete)
	admin.Get("/reviews", reviewH.ListAll)
	admin.Delete("/reviews/:id", reviewH.Delete)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
