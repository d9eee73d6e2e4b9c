package auth

import (
	"net/http"
	"strings"

	"github.com/compasshq/compass/pkg/errx"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "auth_user_id"

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Missing bearer token")
	CodeInvalidToken = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
)

// TokenMiddleware validates bearer JWTs and resolves the authenticated user.
// Full identity management lives in a separate service; this only extracts
// the subject claim the pipeline needs.
type TokenMiddleware struct {
	secret []byte
}

func NewTokenMiddleware(secret string) *TokenMiddleware {
	return &TokenMiddleware{secret: []byte(secret)}
}

// Handle is the fiber middleware entry point
func (m *TokenMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ErrRegistry.New(CodeMissingToken)
	}

	raw := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return ErrRegistry.New(CodeInvalidToken)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return ErrRegistry.New(CodeInvalidToken).WithDetail("claim", "sub")
	}

	c.Locals(userIDKey, kernel.NewUserID(sub))
	return c.Next()
}

// UserID returns the authenticated user stored by the middleware
func UserID(c *fiber.Ctx) (kernel.UserID, bool) {
	id, ok := c.Locals(userIDKey).(kernel.UserID)
	return id, ok && !id.IsEmpty()
}
