// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the groupings
// service. These are loaded via WAFFLE's config system with support
// for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: GROUPINGS_MONGO_URI, GROUPINGS_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "uh_groupings", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "groupings-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Admin grouping
	{Name: "grouping_admins", Default: "uh-settings:groupingAdmins", Desc: "Directory path of the admin grouping"},
	{Name: "bootstrap_admin", Default: "", Desc: "Username seeded into the admin grouping on startup (blank skips)"},

	// Directory subject schema
	{Name: "stale_subject_id", Default: "g:gsa", Desc: "Source id marking stale directory entries"},
	{Name: "attr_username", Default: "uid", Desc: "Attribute name carrying the username"},
	{Name: "attr_uhuuid", Default: "uhUuid", Desc: "Attribute name carrying the directory id"},
	{Name: "attr_first_name", Default: "givenName", Desc: "Attribute name carrying the given name"},
	{Name: "attr_last_name", Default: "sn", Desc: "Attribute name carrying the surname"},
	{Name: "attr_composite_name", Default: "cn", Desc: "Attribute name carrying the display name"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, GROUPINGS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GROUPINGS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		GroupingAdmins: appValues.String("grouping_admins"),
		BootstrapAdmin: appValues.String("bootstrap_admin"),

		StaleSubjectID:   appValues.String("stale_subject_id"),
		UsernameKey:      appValues.String("attr_username"),
		UhUUIDKey:        appValues.String("attr_uhuuid"),
		FirstNameKey:     appValues.String("attr_first_name"),
		LastNameKey:      appValues.String("attr_last_name"),
		CompositeNameKey: appValues.String("attr_composite_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked up front so configuration mistakes
// fail before any connection attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.GroupingAdmins == "" {
		return fmt.Errorf("grouping_admins must name the admin grouping path")
	}

	for key, val := range map[string]string{
		"attr_username":       appCfg.UsernameKey,
		"attr_uhuuid":         appCfg.UhUUIDKey,
		"attr_first_name":     appCfg.FirstNameKey,
		"attr_last_name":      appCfg.LastNameKey,
		"attr_composite_name": appCfg.CompositeNameKey,
	} {
		if val == "" {
			return fmt.Errorf("%s must not be blank", key)
		}
	}

	return nil
}
