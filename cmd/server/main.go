// main.go
//
// A job board backend for candidates, companies and their applications
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jobboard.
// jobboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jobboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jobboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

//go:generate swag init -d ../.. -g cmd/server/main.go -o ../../docs/api

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/database"
	"github.com/localnerve/jobboard/internal/server"
	"github.com/localnerve/jobboard/internal/services"

	_ "github.com/localnerve/jobboard/docs/api" // Swagger docs
)

// @title Jobboard API
// @version 1.0.0
// @description Job board backend for candidates, companies and their applications
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/jobboard
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs the auth rate limiter when configured
	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if rdb == nil {
		log.Printf("REDIS_ADDR not set, auth rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	taxonomy, err := services.LoadTaxonomy()
	if err != nil {
		log.Fatalf("Failed to load education taxonomy: %v", err)
	}

	google := services.NewGoogleAuth(cfg)
	switch {
	case google == nil:
		log.Printf("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	case !cfg.GoogleOAuthEnabled():
		log.Printf("Google web sign-in not fully configured, only mobile sign-in is available")
	}

	if cfg.AuthzURL == "" {
		log.Printf("AUTHZ_URL not set, administrative job routes will refuse every request")
	} else {
		log.Printf("Authorizer will be initialized on first administrative request")
	}

	app := server.New(server.Deps{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Tokens:    services.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		Google:    google,
		Taxonomy:  taxonomy,
		AccessLog: true,
		Metrics:   true,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
