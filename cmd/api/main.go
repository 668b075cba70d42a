package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ndamdavid/servicelink_backend/internal/auth"
	"github.com/ndamdavid/servicelink_backend/internal/config"
	"github.com/ndamdavid/servicelink_backend/internal/db"
	"github.com/ndamdavid/servicelink_backend/internal/handlers"
	"github.com/ndamdavid/servicelink_backend/internal/middleware"
	"github.com/ndamdavid/servicelink_backend/internal/storage"
	"github.com/ndamdavid/servicelink_backend/internal/store"
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
	if err := db.SeedCategories(gdb); err != nil {
		log.Fatal(err)
	}

	var denylist auth.Denylist = auth.NoopDenylist{}
	if cfg.RedisAddr != "" {
		rdl := auth.NewRedisDenylist(cfg.RedisAddr)
		if err := rdl.Client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis not reachable: ", err)
		}
		denylist = rdl
		log.Println("token denylist backed by redis")
	}

	photos, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	users := store.NewUserStore(gdb)
	taxonomy := store.NewTaxonomyStore(gdb)
	requests := store.NewRequestStore(gdb)
	proposals := store.NewProposalStore(gdb)
	verifications := store.NewVerificationStore(gdb)

	authH := &handlers.AuthHandler{
		Users:      users,
		Denylist:   denylist,
		JWTSecret:  cfg.JWTSecret,
		AccessMin:  cfg.JWTExpiresMin,
		RefreshMin: cfg.RefreshExpiresMin,
	}
	userH := handlers.NewUserHandler(users, verifications, photos)
	requestH := handlers.NewServiceRequestHandler(requests, taxonomy)
	proposalH := handlers.NewServiceProposalHandler(proposals, taxonomy)
	taxonomyH := handlers.NewTaxonomyHandler(taxonomy)
	adminH := handlers.NewAdminHandler(users, verifications)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
	}))

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api", middleware.Authenticate(cfg.JWTSecret, users, denylist))

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/refresh", authH.Refresh)
	api.Get("/users/:id/profile", userH.Profile)
	api.Post("/users/verify", userH.SubmitVerification)
	api.Get("/services/requests/list", requestH.List)
	api.Get("/services/requests/:id", requestH.Get)
	api.Get("/services/proposals/list", proposalH.List)
	api.Get("/services/skills", taxonomyH.GetSkills)
	api.Get("/services/categories", taxonomyH.GetCategories)

	// protected (JWT)
	protected := api.Group("/", middleware.RequireUser())
	protected.Get("/me", authH.Me)
	protected.Post("/auth/logout", authH.Logout)
	protected.Post("/services/create/request", requestH.Create)
	protected.Post("/services/create/proposal", proposalH.Create)
	protected.Put("/services/update/request/:id", requestH.Update)
	protected.Put("/services/update/proposal/:id", proposalH.Update)

	// admin side channel
	admin := api.Group("/admin", middleware.RequireAdminKey(cfg.AdminAPIKey))
	admin.Post("/verifications/approve", adminH.ApproveVerifications)
	admin.Post("/verifications/reject", adminH.RejectVerifications)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
