// Command devtoken mints an access token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/notequiz-backend/internal/platform/envutil"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	userID := flag.String("user", "", "user id to place in the token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL_SECONDS or 1h)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: devtoken -user <id> [-ttl 1h]")
		os.Exit(2)
	}

	lifetime := *ttl
	if lifetime == 0 {
		lifetime = envutil.Seconds("AUTH_TOKEN_TTL_SECONDS", 0)
	}
	auth, err := services.NewAuthService(logger.Nop(), services.AuthConfig{
		Secret:   envutil.String("AUTH_JWT_SECRET", ""),
		Issuer:   envutil.String("AUTH_JWT_ISSUER", ""),
		TokenTTL: lifetime,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	token, err := auth.IssueAccessToken(*userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
