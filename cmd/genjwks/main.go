package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// genjwks generates an ES256 keypair for an auth service issuing tokens to the
// posts service. The private JWK is given to the issuer; the public JWKS is
// served at the URL configured as JWT_JWKS_URL.
//
// Usage:
//
//	go run ./cmd/genjwks -kid posts-key-1 -out keys
func main() {
	kid := flag.String("kid", "posts-signing-key", "key ID (kid) to embed in the JWK")
	outDir := flag.String("out", "", "directory to write private.json and jwks.json to (default: print)")
	flag.Parse()

	// Generate ES256 (NIST P-256) private key
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate private key: %v", err)
	}

	privateJWK, err := newJWK(privateKey, *kid)
	if err != nil {
		log.Fatalf("Failed to create private JWK: %v", err)
	}
	publicJWK, err := privateJWK.PublicKey()
	if err != nil {
		log.Fatalf("Failed to derive public JWK: %v", err)
	}

	set := jwk.NewSet()
	if err := set.AddKey(publicJWK); err != nil {
		log.Fatalf("Failed to build JWKS: %v", err)
	}

	privateJSON, err := json.MarshalIndent(privateJWK, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal private JWK: %v", err)
	}
	jwksJSON, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal JWKS: %v", err)
	}

	if *outDir == "" {
		fmt.Println("Private JWK (give to the token issuer, keep SECRET):")
		fmt.Println(string(privateJSON))
		fmt.Println("\nPublic JWKS (serve at JWT_JWKS_URL):")
		fmt.Println(string(jwksJSON))
		return
	}

	if err := os.MkdirAll(*outDir, 0o700); err != nil {
		log.Fatalf("Failed to create %s: %v", *outDir, err)
	}
	if err := os.WriteFile(*outDir+"/private.json", privateJSON, 0o600); err != nil {
		log.Fatalf("Failed to write private key: %v", err)
	}
	if err := os.WriteFile(*outDir+"/jwks.json", jwksJSON, 0o644); err != nil {
		log.Fatalf("Failed to write JWKS: %v", err)
	}
	fmt.Printf("Wrote %s/private.json and %s/jwks.json (kid=%s)\n", *outDir, *outDir, *kid)
}

func newJWK(privateKey *ecdsa.PrivateKey, kid string) (jwk.Key, error) {
	key, err := jwk.FromRaw(privateKey)
	if err != nil {
		return nil, err
	}
	if err := key.Set(jwk.KeyIDKey, kid); err != nil {
		return nil, fmt.Errorf("failed to set kid: %w", err)
	}
	if err := key.Set(jwk.AlgorithmKey, "ES256"); err != nil {
		return nil, fmt.Errorf("failed to set alg: %w", err)
	}
	if err := key.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("failed to set use: %w", err)
	}
	return key, nil
}
