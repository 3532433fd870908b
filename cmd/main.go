package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"craftedbyher/auth"
	"craftedbyher/cache"
	"craftedbyher/config"
	"craftedbyher/controllers"
	"craftedbyher/database"
	"craftedbyher/logging"
	"craftedbyher/mailer"
	"craftedbyher/recommend"
	"craftedbyher/repository"
	"craftedbyher/routes"
	"craftedbyher/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {

	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Configure(cfg.LogLevel, cfg.LogPretty)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	if err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName); err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	database.InitCollections()
	if err := database.EnsureIndexes(ctx, database.DB); err != nil {
		log.Warn().Err(err).Msg("ensure indexes")
	}

	var store cache.Store = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, caching disabled")
		} else {
			defer rc.Close()
			store = rc
		}
	}

	verifier, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCreds)
	if err != nil {
		log.Fatal().Err(err).Msg("init firebase")
	}

	users := repository.NewUserRepository(database.UserCollection)
	products := repository.NewProductRepository(database.ProductCollection)
	orders := repository.NewOrderRepository(database.OrderCollection)
	carts := repository.NewCartRepository(database.CartCollection)
	wishlists := repository.NewWishlistRepository(database.WishlistCollection)
	notifications := repository.NewNotificationRepository(database.NotificationCollection)
	hubs := repository.NewHubRepository(database.HubCollection)
	managers := repository.NewHubManagerRepository(database.HubManagerCollection)
	blacklist := repository.NewTokenBlacklist(database.BlacklistCollection)
	applications := repository.NewSellerApplicationRepository(database.SellerApplicationCollection)

	hubSvc := services.NewHubService(hubs, managers, users, store, cfg.ProductCacheTTL, cfg.DefaultDistrict)
	managerSvc := services.NewManagerService(managers, hubs, blacklist, auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL))
	accounts := services.NewAccountService(users)

	h := &controllers.Handler{
		Orders: services.NewOrderService(
			orders, products, carts, hubSvc,
			services.NewNotifier(notifications, users, managers),
			mailer.New(cfg.SMTP),
			services.OrderConfig{
				OTPTTL:        cfg.OTPTTL,
				ArrivalDelay:  cfg.ArrivalDelay,
				PaymentSecret: cfg.RazorpayKeySecret,
			},
		),
		Products: services.NewProductService(products, recommend.NewClient(cfg.MLServiceURL, cfg.MLServiceTimeout), store, cfg.ProductCacheTTL),
		Hubs:     hubSvc,
		Managers: managerSvc,
		Inbox:    services.NewInbox(notifications),
		Wishlist: services.NewWishlistService(wishlists, products),
		Cart:     services.NewCartService(carts, products),

		Accounts:     accounts,
		Applications: services.NewSellerApplicationService(applications, users, cfg.DefaultDistrict),
	}

	r := routes.NewRouter(cfg.CORSOrigins)
	routes.RegisterRoutes(r, h, routes.Auth{Verifier: verifier, Accounts: accounts, Managers: managerSvc})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	h.Orders.Stop()
	database.Disconnect(shutdownCtx)
}
