package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/auth"
	"github.com/issaqr/inventory-qr-api/internal/application/authz"
	"github.com/issaqr/inventory-qr-api/internal/application/invitation"
	"github.com/issaqr/inventory-qr-api/internal/application/report"
	"github.com/issaqr/inventory-qr-api/internal/application/subscription"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	InvitationUC   *invitation.InvitationUseCase
	UserAdminUC    *usecase.UserAdminUseCase
	SchoolUC       *usecase.SchoolUseCase
	ClassroomUC    *usecase.ClassroomUseCase
	CategoryUC     *usecase.CategoryUseCase
	TemplateUC     *usecase.TemplateUseCase
	AssetUC        *usecase.AssetUseCase
	QRUC           *usecase.QRUseCase
	IncidentUC     *usecase.IncidentUseCase
	SubscriptionUC *subscription.SubscriptionUseCase
	ReportUC       *report.ReportUseCase
	Authorizer     *authz.Authorizer
	Log            *logger.Logger
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	superAdmin := RequireSuperAdmin(deps.Authorizer)
	admin := RequireAdmin(deps.Authorizer)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/register-with-invitation", authHandler.RegisterWithInvitation)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.GoogleLogin)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Webhook de pagos (público: autentica el gateway, no un usuario)
	subscriptionHandler := NewSubscriptionHandler(deps.SubscriptionUC, deps.Log)
	api.Post("/webhooks/payments", subscriptionHandler.PaymentWebhook)

	// Invitaciones: lookup público por token, emisión solo super admin
	invitationHandler := NewInvitationHandler(deps.InvitationUC)
	api.Get("/invitations/:token", invitationHandler.GetByToken)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	invitations := protected.Group("/invitations", superAdmin)
	invitations.Post("/", invitationHandler.Create)
	invitations.Get("/", invitationHandler.List)

	// Administración de usuarios (solo super admin)
	adminUsers := protected.Group("/admin-users", superAdmin)
	userAdminHandler := NewUserAdminHandler(deps.UserAdminUC)
	adminUsers.Get("/", userAdminHandler.List)
	adminUsers.Get("/:id", userAdminHandler.GetByID)
	adminUsers.Put("/:id", userAdminHandler.Update)
	adminUsers.Put("/:id/status", userAdminHandler.SetStatus)
	adminUsers.Post("/:id/activate", userAdminHandler.Activate)
	adminUsers.Post("/:id/suspend", userAdminHandler.Suspend)
	adminUsers.Post("/:id/block", userAdminHandler.Block)
	adminUsers.Post("/:id/roles", userAdminHandler.AssignRole)

	// Colegios: escritura de admin, lectura para cualquier autenticado
	schools := protected.Group("/schools")
	schoolHandler := NewSchoolHandler(deps.SchoolUC)
	schools.Get("/", schoolHandler.List)
	schools.Get("/:id", schoolHandler.GetByID)
	schools.Post("/", admin, schoolHandler.Create)
	schools.Put("/:id", admin, schoolHandler.Update)
	schools.Delete("/:id", admin, schoolHandler.Delete)

	// Aulas
	classrooms := protected.Group("/classrooms")
	classroomHandler := NewClassroomHandler(deps.ClassroomUC)
	classrooms.Get("/", classroomHandler.List)
	classrooms.Get("/:id", classroomHandler.GetByID)
	classrooms.Get("/:id/inventory", classroomHandler.Inventory)
	classrooms.Post("/", admin, classroomHandler.Create)
	classrooms.Put("/:id", admin, classroomHandler.Update)
	classrooms.Delete("/:id", admin, classroomHandler.Delete)

	// Catálogo de activos
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.TemplateUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", admin, catalogHandler.CreateCategory)

	templates := protected.Group("/templates")
	templates.Get("/", catalogHandler.ListTemplates)
	templates.Get("/:id", catalogHandler.GetTemplate)
	templates.Post("/", admin, catalogHandler.CreateTemplate)

	// Activos (historial y QR incluidos)
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC, deps.QRUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Post("/bulk-update", assetHandler.BulkUpdate)
	assets.Post("/bulk-delete", assetHandler.BulkDelete)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id", assetHandler.Update)
	assets.Patch("/:id/image", assetHandler.PatchImage)
	assets.Delete("/:id", assetHandler.Delete)
	assets.Get("/:id/events", assetHandler.Events)
	assets.Get("/:id/qr-codes", assetHandler.GetQR)
	assets.Post("/:id/qr-codes/regenerate", assetHandler.RegenerateQR)

	// Incidentes
	incidents := protected.Group("/incidents")
	incidentHandler := NewIncidentHandler(deps.IncidentUC)
	incidents.Post("/", incidentHandler.Create)
	incidents.Get("/", incidentHandler.List)
	incidents.Get("/:id", incidentHandler.GetByID)
	incidents.Put("/:id", incidentHandler.Update)
	incidents.Delete("/:id", incidentHandler.Delete)

	// Planes (escritura solo super admin)
	plans := protected.Group("/plans")
	plans.Get("/", subscriptionHandler.ListPlans)
	plans.Get("/:id", subscriptionHandler.GetPlan)
	plans.Post("/", superAdmin, subscriptionHandler.CreatePlan)
	plans.Put("/:id", superAdmin, subscriptionHandler.UpdatePlan)
	plans.Delete("/:id", superAdmin, subscriptionHandler.DeletePlan)

	// Suscripciones
	subscriptions := protected.Group("/subscriptions")
	subscriptions.Post("/sweep-expired", superAdmin, subscriptionHandler.SweepExpired)
	subscriptions.Post("/", admin, subscriptionHandler.CreateSubscription)
	subscriptions.Get("/schools/:schoolId/current", subscriptionHandler.CurrentSubscription)
	subscriptions.Get("/schools/:schoolId", subscriptionHandler.ListBySchool)
	subscriptions.Get("/:id", subscriptionHandler.GetSubscription)
	subscriptions.Get("/:id/payments", subscriptionHandler.ListPayments)
	subscriptions.Post("/:id/renew", admin, subscriptionHandler.Renew)

	// Reportes y dashboard
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/assets", reportHandler.Assets)
	reports.Get("/assets/pdf", reportHandler.AssetsPDF)
	reports.Get("/incidents", reportHandler.Incidents)
	reports.Get("/overview", reportHandler.Overview)
	protected.Get("/dashboard", reportHandler.Dashboard)
}
