package utils

import (
	"log"
	"os"
)

var JWTSecretKey string

// InitJWT loads the shared secret used to verify bearer tokens. Token
// issuance happens outside this service; we only verify.
func InitJWT() {
	// For tests, use a default value if the environment variable isn't set
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}
}
