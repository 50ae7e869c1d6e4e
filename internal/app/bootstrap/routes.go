// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	groupingsfeature "github.com/ruizaj/uh-groupings-api/internal/app/features/groupings"
	healthfeature "github.com/ruizaj/uh-groupings-api/internal/app/features/health"
	sessionfeature "github.com/ruizaj/uh-groupings-api/internal/app/features/session"
	"github.com/ruizaj/uh-groupings-api/internal/app/services/assignment"
	groupingstore "github.com/ruizaj/uh-groupings-api/internal/app/store/groupings"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/auth"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It wires the session manager,
// the Mongo-backed grouping store, and the assignment service, then
// mounts the JSON feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)

	store := groupingstore.New(deps.MongoDatabase, appCfg.AttributeNames())
	schema := subjects.Schema{
		UsernameKey:      appCfg.UsernameKey,
		UhUUIDKey:        appCfg.UhUUIDKey,
		FirstNameKey:     appCfg.FirstNameKey,
		LastNameKey:      appCfg.LastNameKey,
		CompositeNameKey: appCfg.CompositeNameKey,
		StaleSourceID:    appCfg.StaleSubjectID,
	}
	svc := assignment.New(store, schema, appCfg.GroupingAdmins, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged
	// in, making the current user available via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Session establishment and teardown
	sessionHandler := sessionfeature.NewHandler(sessionMgr, logger)
	r.Mount("/api/session", sessionfeature.Routes(sessionHandler))

	// Grouping assignment API
	groupingsHandler := groupingsfeature.NewHandler(svc, logger)
	r.Mount("/api/groupings", groupingsfeature.Routes(groupingsHandler))

	return r, nil
}
