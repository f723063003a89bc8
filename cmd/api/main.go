package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"photodesk/internal/config"
	"photodesk/internal/database"
	"photodesk/internal/domain"
	"photodesk/internal/middleware"
	"photodesk/internal/modules/auth"
	"photodesk/internal/modules/booking"
	"photodesk/internal/modules/catalog"
	"photodesk/internal/modules/client"
	"photodesk/internal/modules/download"
	"photodesk/internal/modules/gallery"
	"photodesk/internal/modules/notify"
	"photodesk/internal/modules/payment"
	jwtsvc "photodesk/internal/pkg/jwt"
	"photodesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Client{},
		&domain.CatalogService{},
		&domain.Package{},
		&domain.PackagePrice{},
		&domain.AddOn{},
		&domain.AddOnPrice{},
		&domain.Booking{},
		&domain.BookingAddOn{},
		&domain.BookingAssignment{},
		&domain.Event{},
		&domain.Photo{},
		&domain.DownloadSelection{},
		&domain.SelectionFile{},
		&domain.Payment{},
		&domain.Notification{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	eventRepo := repository.NewEventRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	ownerStore := repository.NewOwnerStore(bookingRepo, selectionRepo)

	tokens := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	notifyService := notify.NewService(notificationRepo, log.Printf)
	notifyHandler := notify.NewHandler(notifyService)

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	clientService := client.NewService(clientRepo)
	clientHandler := client.NewHandler(clientService)

	bookingService := booking.NewService(bookingRepo, clientRepo, catalogService, notifyService)
	bookingHandler := booking.NewHandler(bookingService)

	galleryService := gallery.NewService(eventRepo, clientRepo)
	galleryHandler := gallery.NewHandler(galleryService)

	downloadService := download.NewService(selectionRepo, eventRepo, notifyService)
	downloadHandler := download.NewHandler(downloadService)

	provider := payment.NewStripeProvider(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	paymentService := payment.NewService(paymentRepo, ownerStore, provider, downloadService, notifyService, log.Printf)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		downloadHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			clientHandler.RegisterProtectedRoutes(protected)
			galleryHandler.RegisterProtectedRoutes(protected)
			downloadHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			notifyHandler.RegisterProtectedRoutes(protected)
		}

		staff := v1.Group("/")
		staff.Use(middleware.JWTAuth(tokens), middleware.StaffOnly())
		{
			bookingHandler.RegisterStaffRoutes(staff)
			clientHandler.RegisterStaffRoutes(staff)
			galleryHandler.RegisterStaffRoutes(staff)
			downloadHandler.RegisterStaffRoutes(staff)
			paymentHandler.RegisterStaffRoutes(staff)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
