// Command devtoken issues signed access tokens for local development.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"marketplace/config"
	"marketplace/internal/domain/constants"
	"marketplace/internal/domain/entity"
	"marketplace/internal/infra/auth"
	"marketplace/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func main() {
	userFlag := flag.String("user", "", "User ID to embed as subject (random when empty)")
	rolesFlag := flag.String("roles", "customer", "Comma separated roles: customer, vendor, admin")
	ttlFlag := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	if err := run(*userFlag, *rolesFlag, *ttlFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func run(userFlag, rolesFlag string, ttl time.Duration) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if cfg.Env.Env == constants.EnvProduction {
		return errors.New("refusing to issue development tokens in production")
	}

	userID := uuid.New()
	if userFlag != "" {
		if userID, err = uuid.Parse(userFlag); err != nil {
			return errors.Wrap(err, "invalid user id")
		}
	}

	roles, err := entity.ParseRoles(rolesFlag)
	if err != nil {
		return errors.Wrap(err, "invalid -roles")
	}

	tokenSvc, err := auth.NewJWTService(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create token service")
	}

	token, err := tokenSvc.GenerateAccessToken(userID, roles.ToStrings(), ttl)
	if err != nil {
		return errors.Wrap(err, "failed to sign token")
	}

	fmt.Fprintf(os.Stderr, "user=%s roles=%s expires_in=%s\n", userID, strings.Join(roles.ToStrings(), ","), util.FormatDuration(ttl))
	fmt.Println(token)

	return nil
}
