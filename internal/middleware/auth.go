package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/whoamaiii/kreativium/backend/internal/apierror"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/models"
)

const actorKey = "actor"

// Claims are the JWT claims the API accepts. Subject is the user id.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier checks bearer tokens signed with a shared HS256 secret
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier. An empty issuer skips the iss check.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses token and returns the actor it identifies. A token without
// a role claim is treated as a child.
func (v *TokenVerifier) Verify(token string) (models.Actor, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return models.Actor{}, err
	}
	if !parsed.Valid {
		return models.Actor{}, errors.New("token is not valid")
	}

	if claims.Subject == "" {
		return models.Actor{}, errors.New("token has no subject")
	}
	role := claims.Role
	if role == "" {
		role = models.RoleChild
	}
	if !role.Valid() {
		return models.Actor{}, fmt.Errorf("unknown role %q", role)
	}
	return models.Actor{UserID: claims.Subject, Role: role}, nil
}

// Sign issues a token for actor that expires after ttl
func (v *TokenVerifier) Sign(actor models.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Auth middleware to verify JWT tokens
func Auth(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("authentication failed: missing authorization header")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			log.Debug("authentication failed: invalid authorization format")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		actor, err := verifier.Verify(token)
		if err != nil {
			log.Warn("authentication failed: token verification error", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		c.Set("user_id", actor.UserID)
		c.Set(actorKey, actor)

		ctx := logger.WithUser(c.Request.Context(), actor.UserID, string(actor.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ActorFrom returns the authenticated caller set by Auth
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
