package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/afaeffea/salon-bot-tg/internal/config"
	"github.com/afaeffea/salon-bot-tg/internal/handlers"
	infraRepo "github.com/afaeffea/salon-bot-tg/internal/infra/repository"
	"github.com/afaeffea/salon-bot-tg/internal/middleware"
	"github.com/afaeffea/salon-bot-tg/internal/models"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
	"github.com/afaeffea/salon-bot-tg/internal/session"
	ucBooking "github.com/afaeffea/salon-bot-tg/internal/usecase/booking"
	ucSchedule "github.com/afaeffea/salon-bot-tg/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	dispatcher := notify.NewDispatcher(notify.LogNotifier{})

	sessions := session.NewStore(rdb, 24*time.Hour)

	// ======================================================
	// USE CASES
	// ======================================================
	freeSlotsUC := ucSchedule.NewFreeSlots(catalogRepo, scheduleRepo, bookingRepo, cfg.Timezone)

	createUC := ucBooking.NewCreate(bookingRepo, catalogRepo, dispatcher)
	setStatusUC := ucBooking.NewSetStatus(bookingRepo, dispatcher)
	cancelUC := ucBooking.NewCancel(bookingRepo, dispatcher)
	offerRescheduleUC := ucBooking.NewOfferReschedule(bookingRepo, catalogRepo, dispatcher)
	acceptRescheduleUC := ucBooking.NewAcceptReschedule(bookingRepo, dispatcher)
	declineRescheduleUC := ucBooking.NewDeclineReschedule(bookingRepo, dispatcher)
	listUC := ucBooking.NewList(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, userRepo, cfg)
	meHandler := handlers.NewMeHandler(userRepo)
	catalogHandler := handlers.NewCatalogHandler(db, catalogRepo)
	masterHandler := handlers.NewMasterHandler(db, userRepo)
	scheduleHandler := handlers.NewScheduleHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(freeSlotsUC)
	sessionHandler := handlers.NewSessionHandler(sessions, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		setStatusUC,
		cancelUC,
		offerRescheduleUC,
		acceptRescheduleUC,
		declineRescheduleUC,
		listUC,
	)

	// ======================================================
	// ROUTES
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/session", authHandler.Session)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// FRONT-END SESSION STATE (bot token)
		// ------------------------------
		api.GET("/sessions/:chatId", sessionHandler.Get)
		api.PUT("/sessions/:chatId", sessionHandler.Set)
		api.DELETE("/sessions/:chatId", sessionHandler.Clear)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			secured.GET("/services", catalogHandler.ListServices)
			secured.GET("/services/:id/masters", catalogHandler.ListMastersForService)
			secured.GET("/masters", masterHandler.List)
			secured.GET("/masters/:id/services", catalogHandler.ListServicesForMaster)

			secured.GET("/availability", availabilityHandler.Get)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/reschedule/accept", appointmentHandler.AcceptReschedule)
			secured.POST("/appointments/:id/reschedule/decline", appointmentHandler.DeclineReschedule)

			// ------------------------------
			// MASTER
			// ------------------------------
			master := secured.Group("/master")
			master.Use(middleware.RequireRole(models.RoleMaster, models.RoleAdmin))
			{
				master.GET("/appointments", appointmentHandler.ListForMaster)
				master.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				master.PATCH("/appointments/:id/decline", appointmentHandler.Decline)
				master.POST("/appointments/:id/reschedule", appointmentHandler.OfferReschedule)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/appointments", appointmentHandler.ListAll)

				admin.POST("/masters", masterHandler.Create)
				admin.PATCH("/masters/:id", masterHandler.Update)

				admin.POST("/services", catalogHandler.CreateService)
				admin.PATCH("/services/:id", catalogHandler.UpdateService)
				admin.PUT("/master-services", catalogHandler.UpsertMasterService)

				admin.GET("/work-rules", scheduleHandler.ListWorkRules)
				admin.PUT("/work-rules", scheduleHandler.UpsertWorkRule)
				admin.DELETE("/work-rules/:weekday", scheduleHandler.DeleteWorkRule)

				admin.GET("/masters/:id/work-rules", scheduleHandler.ListMasterWorkRules)
				admin.PUT("/masters/:id/work-rules", scheduleHandler.UpsertMasterWorkRule)
				admin.DELETE("/masters/:id/work-rules/:weekday", scheduleHandler.DeleteMasterWorkRule)

				admin.GET("/breaks", scheduleHandler.ListBreaks)
				admin.POST("/breaks", scheduleHandler.AddBreak)
				admin.DELETE("/breaks/:id", scheduleHandler.DeleteBreak)
				admin.POST("/masters/:id/breaks", scheduleHandler.AddMasterBreak)
				admin.DELETE("/masters/:id/breaks/:breakId", scheduleHandler.DeleteMasterBreak)

				admin.GET("/blocks", scheduleHandler.ListBlocks)
				admin.POST("/blocks", scheduleHandler.AddBlock)
				admin.DELETE("/blocks/:id", scheduleHandler.DeleteBlock)
			}
		}
	}
}
