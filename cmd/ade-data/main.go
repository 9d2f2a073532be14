package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandonbohn/adebackend/common/database"
	"github.com/brandonbohn/adebackend/common/logger"
	commonmqtt "github.com/brandonbohn/adebackend/common/mqtt"
	commonredis "github.com/brandonbohn/adebackend/common/redis"
	"github.com/brandonbohn/adebackend/internal/config"
	"github.com/brandonbohn/adebackend/internal/events"
	httpapi "github.com/brandonbohn/adebackend/internal/http"
	"github.com/brandonbohn/adebackend/internal/notify"
	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/service"
	"github.com/brandonbohn/adebackend/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "ade-data")
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()
	if envErr != nil {
		log.Warn("No .env file loaded, using process environment", zap.Error(envErr))
	}

	checks := map[string]httpapi.HealthCheck{}

	// Storage: Postgres when reachable, memory otherwise
	var db *sql.DB
	st := repository.NewMemoryStore().Store()
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			st = repository.NewPostgresStore(db)
			checks["database"] = db.PingContext
			log.Info("DB enabled for ade-data", zap.String("database", cfg.Database.Database))
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	} else {
		log.Info("DB disabled, using memory store")
	}

	// Redis: content cache and event stream
	var redisClient *commonredis.Client
	var kv store.KV = store.NopKV{}
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RedisEnabled {
		if c, err := commonredis.Connect(context.Background(), &cfg.Redis, 2*time.Second); err == nil {
			redisClient = c
			kv = store.NewRedisKV(c)
			publisher = events.NewStreamPublisher(c, cfg.Events.Stream, cfg.Events.MaxLen, log)
			checks["redis"] = func(ctx context.Context) error { return commonredis.Ping(ctx, c) }
			log.Info("Redis enabled for ade-data", zap.String("addr", cfg.Redis.Addr), zap.String("stream", cfg.Events.Stream))
		} else {
			log.Warn("Redis enabled but unreachable, cache and events disabled", zap.Error(err))
		}
	}

	// MQTT: admin alerts
	var alerts notify.AlertPublisher = notify.NopAlerts{}
	var mqttClient *commonmqtt.Client
	if cfg.MQTT.Enabled {
		if c, err := commonmqtt.NewClient(&cfg.MQTT.Broker, log); err == nil {
			mqttClient = c
			alerts = notify.NewMQTTAlerts(c, cfg.MQTT.AlertTopic, cfg.MQTT.Broker.QoS, log)
			log.Info("MQTT alerts enabled", zap.String("topic", cfg.MQTT.AlertTopic))
		} else {
			log.Warn("MQTT enabled but connection failed, alerts disabled", zap.Error(err))
		}
	}

	var mailer notify.Mailer = notify.NewLogMailer(log)
	if cfg.Email.APIURL != "" {
		mailer = notify.NewGatewayMailer(cfg.Email.APIURL, cfg.Email.APIKey, cfg.Email.From, log)
	} else {
		log.Warn("EMAIL_API_URL not set, emails will only be logged")
	}

	// Services
	identity := service.NewIdentityService(st.Identity, log)
	crossRef := service.NewCrossReferenceService(st.Leads, publisher, log)
	contacts := service.NewContactService(service.ContactServiceDeps{
		Contacts:   st.Contacts,
		Identity:   identity,
		CrossRef:   crossRef,
		Mailer:     mailer,
		Publisher:  publisher,
		Alerts:     alerts,
		AdminEmail: cfg.Email.AdminEmail,
	}, log)
	donors := service.NewDonorService(st.Donors, identity, publisher, log)
	volunteers := service.NewVolunteerService(st.Volunteers, identity, publisher, log)
	donations := service.NewDonationService(st.Donations, st.Donors, mailer, publisher, log)
	content := service.NewContentService(st.Content, kv, cfg.Content.CacheTTL, log)
	payments := service.NewPaymentService(service.PaymentSettings{
		FrontendURL:          cfg.Payments.FrontendURL,
		APIURL:               cfg.Payments.APIURL,
		PayPalEmail:          cfg.Payments.PayPalEmail,
		FlutterwavePublicKey: cfg.Payments.FlutterwavePublicKey,
		SuccessURL:           cfg.Payments.SuccessURL,
		CancelURL:            cfg.Payments.CancelURL,
	}, publisher, alerts, log)
	options := service.NewPaymentOptionService(st.PaymentOptions, log)
	carts := service.NewCartService(store.NewMemoryCartStore(cfg.Cart.TTL), log)
	auth := service.NewAuthService(service.AuthSettings{
		JWTSecret:    cfg.Admin.JWTSecret,
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		TokenTTL:     cfg.Admin.TokenTTL,
	}, log)
	if cfg.Admin.JWTSecret == "change-me" {
		log.Warn("JWT_SECRET is the default value; set it before exposing admin routes")
	}
	admin := service.NewAdminService(st, log)

	// HTTP
	var limited httpapi.Middleware
	if cfg.HTTP.RateLimitRPS > 0 {
		limiter := httpapi.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, time.Hour)
		if err := limiter.TrustProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
		}
		limited = limiter.Middleware(log)
	}
	router := httpapi.NewRouter(log, httpapi.RequireAdmin(auth, log), limited)
	router.RegisterHealthRoutes(httpapi.NewHealthHandler(checks, log))
	router.RegisterContactRoutes(httpapi.NewContactsHandler(contacts, log))
	router.RegisterDonorRoutes(httpapi.NewDonorsHandler(donors, log))
	router.RegisterVolunteerRoutes(httpapi.NewVolunteersHandler(volunteers, log))
	router.RegisterDonationRoutes(httpapi.NewDonationsHandler(donations, log))
	router.RegisterContentRoutes(httpapi.NewContentHandler(content, log))
	router.RegisterPaymentRoutes(httpapi.NewPaymentsHandler(payments, log))
	router.RegisterPaymentOptionRoutes(httpapi.NewPaymentOptionsHandler(options, log))
	router.RegisterCartRoutes(httpapi.NewCartHandler(carts, log))
	router.RegisterAdminRoutes(httpapi.NewAdminHandler(auth, admin, log))

	handler := httpapi.Chain(router,
		httpapi.Recover(log),
		httpapi.AccessLog(log),
		httpapi.CORS(cfg.HTTP.CORSOrigins),
	)
	srv := service.NewServer(cfg.HTTP.Addr, handler, 5*time.Second, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		log.Error("HTTP server failed", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if redisClient != nil {
		_ = commonredis.Close(redisClient)
	}
	if db != nil {
		_ = database.Close(db)
	}
}
