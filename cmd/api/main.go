package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jornada-app/jornada-backend-go/internal/config"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	appHTTP "github.com/jornada-app/jornada-backend-go/internal/handler/http"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/database"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/jwt"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/oauth"
	"github.com/jornada-app/jornada-backend-go/internal/repository/postgresql"
	authService "github.com/jornada-app/jornada-backend-go/internal/service/auth"
	reportService "github.com/jornada-app/jornada-backend-go/internal/service/report"
	timelogService "github.com/jornada-app/jornada-backend-go/internal/service/timelog"
	userService "github.com/jornada-app/jornada-backend-go/internal/service/user"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	timeLogRepo := postgresql.NewTimeLogRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)

	authSvc := authService.NewAuthService(txManager, userRepo, jwtSvc, jwtRepo, googleSvc)
	timeLogSvc := timelogService.NewTimeLogService(txManager, timeLogRepo)
	reportSvc := reportService.NewReportService(timeLogRepo)
	userSvc := userService.NewUserService(userRepo)

	if err := seedAdmin(cfg, userRepo); err != nil {
		log.Fatal("Failed to seed admin account: ", err)
	}

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc)
	timeLogHandler := appHTTP.NewTimeLogHandler(timeLogSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, FrontendURL: cfg.App.FrontendURL},
		jwtSvc,
		userRepo,
		authHandler,
		timeLogHandler,
		reportHandler,
		userHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// seedAdmin creates the first admin account when the directory is empty, so
// a fresh deployment has someone who can log in and create the rest.
func seedAdmin(cfg *config.Config, userRepo user.UserRepository) error {
	if cfg.SeedAdmin.Email == "" {
		return nil
	}

	ctx := context.Background()
	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashed := string(hash)

	_, err = userRepo.Create(ctx, user.User{
		Email:        cfg.SeedAdmin.Email,
		Name:         cfg.SeedAdmin.Name,
		PasswordHash: &hashed,
		Role:         user.RoleAdmin,
	})
	return err
}
