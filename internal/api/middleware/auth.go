package middleware

import (
	"crypto/rsa"
	"crypto/subtle"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/pplp-engine/internal/api/shared/errors"
	"github.com/feral-file/pplp-engine/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY    contextKey = "auth_type"
	AUTH_SUBJECT_KEY contextKey = "auth_subject"
	JWT_CLAIMS_KEY   contextKey = "jwt_claims"
)

const (
	AuthTypeJWT    = "jwt"
	AuthTypeAPIKey = "apikey"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	AuthType    string
	Claims      *jwt.RegisteredClaims
	AuthSubject string
}

// Authenticator validates Authorization headers against the configured JWT key and API keys
type Authenticator struct {
	publicKey *rsa.PublicKey
	apiKeys   [][]byte
	parser    *jwt.Parser
}

// NewAuthenticator parses the configured public key once. An empty key disables JWT authentication.
func NewAuthenticator(cfg AuthConfig) (*Authenticator, error) {
	a := &Authenticator{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
			jwt.WithExpirationRequired(),
		),
	}
	if cfg.JWTPublicKey != "" {
		key, err := parseRSAPublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		a.publicKey = key
	}
	for _, k := range cfg.APIKeys {
		if k != "" {
			a.apiKeys = append(a.apiKeys, []byte(k))
		}
	}
	return a, nil
}

// Authenticate validates an Authorization header of the form "Bearer <jwt>" or "ApiKey <key>"
func (a *Authenticator) Authenticate(authHeader string) (*AuthResult, error) {
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok || credentials == "" {
		return nil, errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			return nil, err
		}
		return &AuthResult{AuthType: AuthTypeJWT, Claims: claims, AuthSubject: claims.Subject}, nil
	case "apikey":
		if err := a.validateAPIKey(credentials); err != nil {
			return nil, err
		}
		return &AuthResult{AuthType: AuthTypeAPIKey}, nil
	default:
		return nil, fmt.Errorf("unsupported authorization type: %s", scheme)
	}
}

// Auth returns a gin middleware for authentication
// It supports both JWT (Bearer token) and API Key authentication
func Auth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := a.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": apierrors.NewUnauthorizedError("Authentication failed", err.Error()),
			})
			return
		}

		c.Set(AUTH_TYPE_KEY, result.AuthType)
		if result.Claims != nil {
			c.Set(JWT_CLAIMS_KEY, result.Claims)
		}
		if result.AuthSubject != "" {
			c.Set(AUTH_SUBJECT_KEY, result.AuthSubject)
		}
		logger.DebugCtx(c.Request.Context(), "Authenticated request",
			zap.String("auth_type", result.AuthType),
			zap.String("subject", result.AuthSubject),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// Actor returns the identity recorded as the actor of audited mutations: the JWT subject,
// or "apikey" for API key callers
func Actor(c *gin.Context) string {
	if subject := c.GetString(AUTH_SUBJECT_KEY); subject != "" {
		return subject
	}
	if authType := c.GetString(AUTH_TYPE_KEY); authType != "" {
		return authType
	}
	return "anonymous"
}

func (a *Authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if a.publicKey == nil {
		return nil, errors.New("JWT public key not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := a.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// validateAPIKey compares in constant time against every configured key
func (a *Authenticator) validateAPIKey(apiKey string) error {
	if len(a.apiKeys) == 0 {
		return errors.New("no API keys configured")
	}
	candidate := []byte(apiKey)
	match := 0
	for _, k := range a.apiKeys {
		match |= subtle.ConstantTimeCompare(candidate, k)
	}
	if match != 1 {
		return errors.New("invalid API key")
	}
	return nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
