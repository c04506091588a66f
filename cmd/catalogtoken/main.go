// Command catalogtoken prints a signed admin token for catalog mutations,
// using the same CATALOG_JWT_SECRET the catalog service verifies with.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-faster/errors"

	"Storefront/internal/auth"
	"Storefront/internal/config"
)

func main() {
	subject := flag.String("subject", "storefront", "token subject")
	role := flag.String("role", auth.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime; 0 never expires")
	flag.Parse()

	cfg, err := config.LoadCatalog(config.Source{SkipFlags: true})
	if err != nil {
		fail(err)
	}
	if cfg.JWTSecret == "" {
		fail(errors.New("CATALOG_JWT_SECRET is not set"))
	}

	tok, err := auth.NewTokenMaker(cfg.JWTSecret).New(*subject, *role, *ttl)
	if err != nil {
		fail(err)
	}
	fmt.Println(tok)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "catalogtoken:", err)
	os.Exit(1)
}
