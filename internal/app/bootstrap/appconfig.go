// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits). AppConfig carries everything specific
// to the groupings service: the Mongo connection, the session cookie,
// the admin grouping, and the directory attribute schema used when
// normalizing raw subjects.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Admin grouping configuration
	GroupingAdmins string // Directory path of the system-wide admin grouping
	BootstrapAdmin string // Username seeded into the admin grouping on startup (blank skips)

	// Directory subject schema
	StaleSubjectID   string // Source id marking directory entries gone stale
	UsernameKey      string // Attribute name carrying the username (uid)
	UhUUIDKey        string // Attribute name carrying the directory id
	FirstNameKey     string // Attribute name carrying the given name
	LastNameKey      string // Attribute name carrying the surname
	CompositeNameKey string // Attribute name carrying the display name (cn)
}

// AttributeNames returns the positional attribute-name order stored
// with raw subject rows. The order is fixed so positional value arrays
// written by the directory sync stay readable.
func (c AppConfig) AttributeNames() []string {
	return []string{c.UsernameKey, c.UhUUIDKey, c.LastNameKey, c.CompositeNameKey, c.FirstNameKey}
}
