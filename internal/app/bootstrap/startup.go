// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	groupingstore "github.com/ruizaj/uh-groupings-api/internal/app/store/groupings"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.BootstrapAdmin != "" {
		store := groupingstore.New(deps.MongoDatabase, appCfg.AttributeNames())
		if err := ensureBootstrapAdmin(ctx, store, appCfg, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureBootstrapAdmin guarantees the configured username is a member
// of the admin grouping, so a fresh deployment always has at least one
// administrator. Idempotent.
func ensureBootstrapAdmin(ctx context.Context, store *groupingstore.Store, appCfg AppConfig, logger *zap.Logger) error {
	groups, err := store.FindGroupsByMemberUsername(ctx, appCfg.BootstrapAdmin)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if g.Name == appCfg.GroupingAdmins {
			logger.Info("bootstrap admin already present",
				zap.String("username", appCfg.BootstrapAdmin),
				zap.String("admin_grouping", appCfg.GroupingAdmins))
			return nil
		}
	}

	// Positional values aligned with AttributeNames: the username also
	// stands in for the display name until the directory sync fills it.
	values := make([]string, len(appCfg.AttributeNames()))
	for i, key := range appCfg.AttributeNames() {
		if key == appCfg.UsernameKey || key == appCfg.CompositeNameKey {
			values[i] = appCfg.BootstrapAdmin
		}
	}
	subj := subjects.RawSubject{
		Name:            appCfg.BootstrapAdmin,
		AttributeValues: values,
	}
	if err := store.AddMember(ctx, appCfg.GroupingAdmins, subj, appCfg.BootstrapAdmin); err != nil {
		return err
	}
	logger.Info("seeded bootstrap admin",
		zap.String("username", appCfg.BootstrapAdmin),
		zap.String("admin_grouping", appCfg.GroupingAdmins))
	return nil
}
