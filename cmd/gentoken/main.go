package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// gentoken mints an HS256 bearer token for local testing, signed with the same
// SECRET_KEY the server verifies with.
//
// Usage:
//
//	go run ./cmd/gentoken -username alice -ttl 1h
func main() {
	username := flag.String("username", "", "username claim (required)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime; negative values mint an expired token")
	flag.Parse()

	_ = godotenv.Load()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Fatal("SECRET_KEY is not set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": *username,
		"iat":      now.Unix(),
		"exp":      now.Add(*ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(signed)
}
