// Command tokengen signs a development bearer token for a given subject.
//
// The API has no login endpoint; tokens come from an external identity
// provider in production. For local work this tool issues a token with the
// same HMAC secret the server verifies against:
//
//	JWT_SECRET=... go run ./cmd/tokengen -sub jessjelly -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ncnews/go-news-api/internal/auth"
)

func main() {
	sub := flag.String("sub", "", "token subject (username), required")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "tokengen: -sub is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")

	v, err := auth.NewVerifier(secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}

	token, err := v.Issue(*sub, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
