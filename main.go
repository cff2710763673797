// File: streamafrica/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamafrica/config"
	"streamafrica/cron"
	"streamafrica/database"
	profileRepo "streamafrica/database/repository/profile"
	proofRepo "streamafrica/database/repository/proof"
	"streamafrica/handlers"
	"streamafrica/middleware"
	"streamafrica/routes"
	"streamafrica/services/dashboard"
	"streamafrica/services/funnel"
	"streamafrica/services/onboarding"
	"streamafrica/services/payment"
	"streamafrica/services/storage"
	"streamafrica/services/tasks"
	"streamafrica/services/verification"
	"streamafrica/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitFunnelCache()
	utils.InitPaymentCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	profiles := profileRepo.NewMongoProfileRepo()
	fingerprints := proofRepo.NewMongoFingerprintRepo()

	// stores.
	funnelStore := funnel.NewRedisSessionStore(utils.GetFunnelCacheClient(), 24*time.Hour)
	paymentStore := payment.NewRedisPaymentStore(utils.GetPaymentCacheClient(), 24*time.Hour)

	// services.
	funnelService := funnel.NewFunnelService(funnelStore, profiles, &config.AppConfig)

	onboardingService := &onboarding.DefaultOnboardingService{
		Repo: profiles,
	}

	dashboardService := dashboard.NewDashboardService(funnelStore, funnelService)

	// Optional receipt archive.
	var archive storage.StorageService
	if config.AppConfig.CloudinaryCloudName != "" {
		var err error
		archive, err = storage.NewStorageService(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize receipt archive: %v", err)
		}
	}

	// Optional receipt verification gate.
	var verifier verification.ReceiptVerifier
	if config.AppConfig.GeminiAPIKey != "" {
		verifier = verification.NewReceiptVerifier(
			verification.NewGeminiClient(config.AppConfig.GeminiAPIKey),
			fingerprints,
			archive,
			&config.AppConfig,
		)
	}

	// Payment gateways.
	var gateway payment.CardGateway
	if config.AppConfig.PaystackSecretKey != "" {
		gateway = payment.NewPaystackClient(
			config.AppConfig.PaystackBaseURL,
			config.AppConfig.PaystackSecretKey,
		)
	}
	var cashier payment.CashierClient
	if config.AppConfig.OpayPublicKey != "" {
		cashier = payment.NewOpayClient(
			config.AppConfig.OpayAPIURL,
			config.AppConfig.OpayPublicKey,
			config.AppConfig.OpayMerchantID,
		)
	}

	// Transfer expiry scheduling.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()
	scheduler := tasks.NewAsynqExpiryScheduler(queueClient)

	paymentService := payment.NewPaymentService(
		paymentStore,
		funnelService,
		funnelStore,
		gateway,
		cashier,
		scheduler,
		&config.AppConfig,
	)

	cron.InitExpiryWorker(paymentService)

	// handlers.
	funnelHandler := handlers.NewFunnelHandler(funnelService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, funnelService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, &config.AppConfig)
	verificationHandler := handlers.NewVerificationHandler(verifier, paymentService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Funnel endpoints.
		StartSessionHandler: funnelHandler.StartSessionHandler,
		GetSessionHandler:   funnelHandler.GetSessionHandler,
		NavigateHandler:     funnelHandler.NavigateHandler,
		BackHandler:         funnelHandler.BackHandler,
		RedirectHandler:     funnelHandler.RedirectHandler,

		// Onboarding endpoints.
		RegisterHandler: onboardingHandler.RegisterHandler,
		LoginHandler:    onboardingHandler.LoginHandler,

		// Dashboard endpoints.
		DashboardStateHandler:  dashboardHandler.StateHandler,
		DashboardActionHandler: dashboardHandler.ActionHandler,
		ActivateHandler:        dashboardHandler.ActivateHandler,

		// Payment endpoints.
		PaymentMethodsHandler:  paymentHandler.MethodsHandler,
		PaymentStateHandler:    paymentHandler.StateHandler,
		CardInitHandler:        paymentHandler.CardInitHandler,
		CardCallbackHandler:    paymentHandler.CardCallbackHandler,
		TransferStartHandler:   paymentHandler.TransferStartHandler,
		SelectBankHandler:      paymentHandler.SelectBankHandler,
		ConfirmTransferHandler: paymentHandler.ConfirmTransferHandler,
		OpayStartHandler:       paymentHandler.OpayStartHandler,
		OpayCallbackHandler:    paymentHandler.OpayCallbackHandler,

		// Receipt verification.
		UploadProofHandler: verificationHandler.UploadProofHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
