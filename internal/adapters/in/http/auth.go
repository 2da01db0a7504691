package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"brillante/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	operatorContextKey = "operator"
	roleContextKey     = "role"
)

// RoleSupervisor may release orders held by other operators.
const RoleSupervisor = "supervisor"

// OperatorClaims are the token claims identifying an operator. Subject carries the
// operator UUID and Name the display name shown to other operators on conflicts.
// Role is empty for plain operators.
type OperatorClaims struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth returns a middleware that validates an HS256 bearer token and stores the
// operator it names in the request context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "missing bearer token")
			}

			var claims OperatorClaims
			tok, err := parser.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), &claims, keyFunc)
			if err != nil || !tok.Valid {
				return unauthorized(c, "invalid token")
			}

			operator, err := claims.operator()
			if err != nil {
				return unauthorized(c, "invalid claims: "+err.Error())
			}

			c.Set(operatorContextKey, operator)
			c.Set(roleContextKey, claims.Role)
			return next(c)
		}
	}
}

// NewOperatorToken signs an HS256 token for operator that expires after ttl. Pass an
// empty role for a plain operator.
func NewOperatorToken(
	secret string,
	operator kernel.Operator,
	role string,
	ttl time.Duration,
	now time.Time,
) (string, error) {
	claims := OperatorClaims{
		Name: operator.Name(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (c OperatorClaims) operator() (kernel.Operator, error) {
	if c.Subject == "" {
		return kernel.Operator{}, errors.New("sub is required")
	}
	id, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return kernel.Operator{}, err
	}
	return kernel.NewOperator(id, c.Name)
}

// operatorFrom returns the operator stored by JWTAuth.
func operatorFrom(c echo.Context) (kernel.Operator, bool) {
	operator, ok := c.Get(operatorContextKey).(kernel.Operator)
	return operator, ok
}

func isSupervisor(c echo.Context) bool {
	role, _ := c.Get(roleContextKey).(string)
	return role == RoleSupervisor
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
