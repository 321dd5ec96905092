// Command token issues a tenant access token for the back-office API.
// Identity management lives outside this service; operators mint tokens here.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/futurevend/backend/internal/infrastructure/auth"
	"github.com/futurevend/backend/internal/infrastructure/config"
)

func main() {
	var (
		tenant  string
		subject string
	)
	flag.StringVar(&tenant, "tenant", "", "Tenant ID (UUID) the token acts for")
	flag.StringVar(&subject, "subject", "operator", "Subject recorded in the token")
	flag.Parse()

	tenantID, err := uuid.Parse(tenant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -tenant %q: %v\n", tenant, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "FV_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewJWTService(cfg.JWT).GenerateToken(tenantID, subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(token); err != nil {
		os.Exit(1)
	}
}
