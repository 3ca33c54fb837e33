// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	chatbotfeature "github.com/acadiahub/acadiahub/internal/app/features/chatbot"
	eventfeedfeature "github.com/acadiahub/acadiahub/internal/app/features/eventfeed"
	eventsfeature "github.com/acadiahub/acadiahub/internal/app/features/events"
	healthfeature "github.com/acadiahub/acadiahub/internal/app/features/health"
	homefeature "github.com/acadiahub/acadiahub/internal/app/features/home"
	loginfeature "github.com/acadiahub/acadiahub/internal/app/features/login"
	logoutfeature "github.com/acadiahub/acadiahub/internal/app/features/logout"
	mailrelayfeature "github.com/acadiahub/acadiahub/internal/app/features/mailrelay"
	signupfeature "github.com/acadiahub/acadiahub/internal/app/features/signup"
	userinfofeature "github.com/acadiahub/acadiahub/internal/app/features/userinfo"
	eventstore "github.com/acadiahub/acadiahub/internal/app/store/events"
	userstore "github.com/acadiahub/acadiahub/internal/app/store/users"
	"github.com/acadiahub/acadiahub/internal/app/system/auth"
	"github.com/acadiahub/acadiahub/internal/app/system/mailer"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version reported by the root service-info endpoint.
const Version = "1.0.0"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Acadia Hub applies session middleware and mounts the JSON API:
// auth, the event collection, the live feed, the email relay, and the
// chat assistant.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase)
	events := eventstore.New(deps.MongoDatabase)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFromName + " <" + appCfg.MailFrom + ">",
	}, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Service info
	homeHandler := homefeature.NewHandler(Version)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.OpenAIAPIKey != "", appCfg.OpenAIModel, logger)
	r.Mount("/api/health", healthfeature.Routes(healthHandler))

	// Authentication
	signupHandler := signupfeature.NewHandler(users, sessionMgr, logger)
	r.Mount("/api/signup", signupfeature.Routes(signupHandler))

	loginHandler := loginfeature.NewHandler(users, sessionMgr, logger)
	r.Mount("/api/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/api/logout", logoutfeature.Routes(logoutHandler))

	userinfoHandler := userinfofeature.NewHandler()
	r.Mount("/api/me", userinfofeature.Routes(userinfoHandler))

	// Event collection: CRUD, registration, comments
	eventsHandler := eventsfeature.NewHandler(events, eventHub.NameCache(), eventHub, mail, logger)
	r.Mount("/api/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	// Live feed
	feedHandler := eventfeedfeature.NewHandler(eventHub, logger)
	r.Mount("/api/feed", eventfeedfeature.Routes(feedHandler))

	// Email relay
	mailHandler := mailrelayfeature.NewHandler(mail, logger)
	r.Mount("/api/send-email", mailrelayfeature.Routes(mailHandler))

	// Chat assistant
	chatHandler := chatbotfeature.NewHandler(appCfg.OpenAIAPIKey, appCfg.OpenAIModel, logger)
	r.Mount("/api/chatbot", chatbotfeature.Routes(chatHandler))

	return r, nil
}
