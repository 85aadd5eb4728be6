package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
	"strings"  // strings splits comma separated values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The struct is built once at startup and passed
// into the layers that need it; nothing reads the environment afterwards.
type Config struct {
	Env              string   // application environment (e.g. "dev", "prod")
	Port             string   // HTTP port to listen on
	DBUser           string   // database username
	DBPass           string   // database password (optional)
	DBHost           string   // database host address
	DBPort           string   // database port number
	DBName           string   // database name
	SessionSecret    string   // secret used to sign session JWTs
	SessionTTLMin    int      // session token time-to-live in minutes
	OIDCBaseURL      string   // base URL of the OpenID Connect provider
	OIDCClientID     string   // OAuth2 client id registered with the provider
	OIDCClientSecret string   // OAuth2 client secret
	OIDCRedirectURL  string   // absolute URL of /auth/callback as seen by the provider
	FrontendURL      string   // where the browser is sent after a successful login
	UploadDir        string   // directory holding uploaded item images
	CORSOrigins      []string // origins allowed to call the API from a browser
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),            // environment (dev/test/prod)
		Port:             must("APP_PORT"),           // port to bind the HTTP server
		DBUser:           must("DB_USER"),            // database user
		DBPass:           os.Getenv("DB_PASS"),       // database password (empty allowed)
		DBHost:           must("DB_HOST"),            // database host
		DBPort:           must("DB_PORT"),            // database port
		DBName:           must("DB_NAME"),            // database name
		SessionSecret:    must("SESSION_SECRET"),     // secret for signing session tokens
		SessionTTLMin:    mustInt("SESSION_TTL_MIN"), // session lifetime in minutes
		OIDCBaseURL:      must("OIDC_BASE_URL"),      // identity provider base URL
		OIDCClientID:     must("OIDC_CLIENT_ID"),     // OAuth2 client id
		OIDCClientSecret: must("OIDC_CLIENT_SECRET"), // OAuth2 client secret
		OIDCRedirectURL:  must("OIDC_REDIRECT_URL"),  // callback URL registered with the provider
		FrontendURL:      must("FRONTEND_URL"),       // post-login redirect target
		UploadDir:        getenv("UPLOAD_DIR", "static"), // image storage root
		CORSOrigins:      splitOrigins(getenv("CORS_ORIGINS", "")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// splitOrigins parses a comma separated origin list, dropping empty entries.
func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
