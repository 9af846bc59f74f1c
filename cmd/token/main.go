// Command token mints an owner access token for local development.
package main

import (
	"flag"
	"fmt"
	"os"

	"bnbBack/internal/config"
	"bnbBack/utils"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the YAML config file")
	ownerID := flag.Int("owner", 0, "Owner id to embed in the token")
	ttl := flag.Duration("ttl", 0, "Token lifetime (defaults to auth.token_ttl)")
	flag.Parse()

	if *ownerID <= 0 {
		fmt.Fprintln(os.Stderr, "-owner must be a positive id")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *ttl <= 0 {
		*ttl = cfg.Auth.TokenTTL
	}

	tokens, err := utils.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token manager: %v\n", err)
		os.Exit(1)
	}
	token, err := tokens.NewAccessToken(*ownerID, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
