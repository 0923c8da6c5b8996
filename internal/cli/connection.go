package cli

import (
	"fmt"
	"os"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/schedport/schedport/internal/config"
	"github.com/schedport/schedport/internal/db"
	"github.com/schedport/schedport/pkg/schedport"
)

// connectionStringFromEnv returns the first non-empty connection string from
// SCHEDPORT_CONNECTION_STRING or DATABASE_URL environment variables.
func connectionStringFromEnv() string {
	if s := os.Getenv("SCHEDPORT_CONNECTION_STRING"); s != "" {
		return s
	}
	return os.Getenv("DATABASE_URL")
}

// granularConnFlags are the psql-style destination flags on the load command.
type granularConnFlags struct {
	host     string
	port     int
	username string
	database string
	sslMode  string
}

// resolveConnection builds the destination ConnectionConfig with layered
// precedence: flags > environment (PG* / SCHEDPORT_CONNECTION_STRING /
// DATABASE_URL) > schedport.yaml > defaults.
func resolveConnection(
	connStringFlag string,
	flags granularConnFlags,
	projectConfig *config.ProjectConfig,
) (*schedport.ConnectionConfig, error) {
	connString := connStringFlag
	if connString == "" {
		connString = connectionStringFromEnv()
	}

	var connConfig *schedport.ConnectionConfig
	if connString != "" {
		parsed, err := db.ParseConnectionString(connString)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", schedport.ErrInvalidConfig, err)
		}
		connConfig = parsed
	} else {
		connConfig = &schedport.ConnectionConfig{
			Host:             "localhost",
			Port:             5432,
			SSLMode:          "prefer",
			AdditionalParams: make(map[string]string),
		}
		applyProjectConfig(connConfig, projectConfig)
		applyEnvironment(connConfig)
	}

	// Granular flags override whatever the lower layers provided.
	if flags.host != "" {
		connConfig.Host = flags.host
	}
	if flags.port != 0 {
		connConfig.Port = flags.port
	}
	if flags.username != "" {
		connConfig.Username = flags.username
	}
	if flags.database != "" {
		connConfig.Database = flags.database
	}
	if flags.sslMode != "" {
		connConfig.SSLMode = flags.sslMode
	}

	if connConfig.Password == "" {
		connConfig.Password = os.Getenv("PGPASSWORD")
	}

	return connConfig, nil
}

// applyProjectConfig copies schedport.yaml connection settings onto the config.
func applyProjectConfig(connConfig *schedport.ConnectionConfig, projectConfig *config.ProjectConfig) {
	if projectConfig == nil {
		return
	}

	pc := projectConfig.Connection
	if pc.Host != "" {
		connConfig.Host = pc.Host
	}
	if pc.Port != 0 {
		connConfig.Port = pc.Port
	}
	if pc.Username != "" {
		connConfig.Username = pc.Username
	}
	if pc.Database != "" {
		connConfig.Database = pc.Database
	}
	if pc.SSLMode != "" {
		connConfig.SSLMode = pc.SSLMode
	}
	if pc.AzureTenantID != "" {
		connConfig.AzureTenantID = pc.AzureTenantID
	}
	if pc.AzureClientID != "" {
		connConfig.AzureClientID = pc.AzureClientID
	}
	if pc.AWSRegion != "" {
		connConfig.AWSRegion = pc.AWSRegion
	}
	if pc.GoogleInstance != "" {
		connConfig.GoogleInstance = pc.GoogleInstance
	}
}

// applyEnvironment overlays the standard PostgreSQL environment variables.
func applyEnvironment(connConfig *schedport.ConnectionConfig) {
	if v := os.Getenv("PGHOST"); v != "" {
		connConfig.Host = v
	}
	if v := os.Getenv("PGPORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			connConfig.Port = port
		}
	}
	if v := os.Getenv("PGUSER"); v != "" {
		connConfig.Username = v
	}
	if v := os.Getenv("PGDATABASE"); v != "" {
		connConfig.Database = v
	}
	if v := os.Getenv("PGSSLMODE"); v != "" {
		connConfig.SSLMode = v
	}
}

// promptPassword reads a password from the terminal without echo.
// Fails when stdin is not a terminal (scripts must use $PGPASSWORD).
func promptPassword(username string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("cannot prompt for password: stdin is not a terminal (set $PGPASSWORD instead)")
	}

	fmt.Fprintf(os.Stderr, "Password for user %s: ", username)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
