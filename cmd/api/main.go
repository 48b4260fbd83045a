package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/issaqr/inventory-qr-api/internal/application/auth"
	"github.com/issaqr/inventory-qr-api/internal/application/authz"
	"github.com/issaqr/inventory-qr-api/internal/application/invitation"
	"github.com/issaqr/inventory-qr-api/internal/application/report"
	"github.com/issaqr/inventory-qr-api/internal/application/subscription"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/internal/infrastructure/email"
	"github.com/issaqr/inventory-qr-api/internal/infrastructure/googleauth"
	infrapdf "github.com/issaqr/inventory-qr-api/internal/infrastructure/pdf"
	"github.com/issaqr/inventory-qr-api/internal/infrastructure/postgres"
	"github.com/issaqr/inventory-qr-api/internal/infrastructure/qr"
	httpRouter "github.com/issaqr/inventory-qr-api/internal/interfaces/http"
	"github.com/issaqr/inventory-qr-api/pkg/config"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool compartido
	userRepo := postgres.NewUserRepository(pool)
	userRoleRepo := postgres.NewUserRoleRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	schoolRepo := postgres.NewSchoolRepository(pool)
	classroomRepo := postgres.NewClassroomRepository(pool)
	categoryRepo := postgres.NewAssetCategoryRepository(pool)
	templateRepo := postgres.NewAssetTemplateRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	eventRepo := postgres.NewAssetEventRepository(pool)
	qrRepo := postgres.NewQRCodeRepository(pool)
	incidentRepo := postgres.NewIncidentRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	paymentTxRunner := postgres.NewPaymentTxRunner(pool)

	// Adaptadores externos
	authorizer := authz.NewAuthorizer(userRoleRepo)
	qrGenerator := qr.NewGenerator()
	pdfGenerator := infrapdf.NewReportGenerator()

	// Google login y SMTP son opcionales por configuración
	var googleVerifier auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		googleVerifier = googleauth.NewVerifier(cfg.Google.ClientID)
	}
	var mailer invitation.Mailer
	if cfg.SMTP.Host != "" {
		mailer = email.NewSMTPMailer(cfg.SMTP, cfg.Frontend.BaseURL)
	}

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, invitationRepo, txRunner, authorizer, googleVerifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	invitationUC := invitation.NewInvitationUseCase(invitationRepo, schoolRepo, mailer, log, cfg.Invitation.ExpireHours)
	userAdminUC := usecase.NewUserAdminUseCase(userRepo, userRoleRepo, authorizer)
	schoolUC := usecase.NewSchoolUseCase(schoolRepo)
	classroomUC := usecase.NewClassroomUseCase(classroomRepo, schoolRepo, reportRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	templateUC := usecase.NewTemplateUseCase(templateRepo, categoryRepo)
	assetUC := usecase.NewAssetUseCase(
		assetRepo, classroomRepo, templateRepo, eventRepo, qrRepo,
		qrGenerator, log, cfg.Frontend.BaseURL,
	)
	qrUC := usecase.NewQRUseCase(assetUC, qrRepo, assetRepo)
	incidentUC := usecase.NewIncidentUseCase(incidentRepo, assetRepo, eventRepo, log)
	subscriptionUC := subscription.NewSubscriptionUseCase(
		planRepo, subscriptionRepo, paymentRepo, schoolRepo, paymentTxRunner, log,
	)
	reportUC := report.NewReportUseCase(reportRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		InvitationUC:   invitationUC,
		UserAdminUC:    userAdminUC,
		SchoolUC:       schoolUC,
		ClassroomUC:    classroomUC,
		CategoryUC:     categoryUC,
		TemplateUC:     templateUC,
		AssetUC:        assetUC,
		QRUC:           qrUC,
		IncidentUC:     incidentUC,
		SubscriptionUC: subscriptionUC,
		ReportUC:       reportUC,
		Authorizer:     authorizer,
		Log:            log,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
