package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
)

type Service interface {
	GenerateAccessToken(actor auth.Actor, username string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(actor auth.Actor, username string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":  actor.UserID,
		"username": username,
		"role":     string(actor.Role),
		"type":     "access",
		"exp":      expiresAt,
	}
	if actor.EmployeeID != nil {
		claims["employee_id"] = *actor.EmployeeID
	}
	if actor.SectorID != nil {
		claims["sector_id"] = *actor.SectorID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ActorFromClaims rebuilds the request actor from decoded JWT claims.
// Numeric claims come back as float64 from the JSON round trip.
func ActorFromClaims(claims map[string]interface{}) (auth.Actor, bool) {
	userID, ok := claimInt64(claims, "user_id")
	if !ok {
		return auth.Actor{}, false
	}
	roleStr, ok := claims["role"].(string)
	if !ok || !user.ValidRole(roleStr) {
		return auth.Actor{}, false
	}

	actor := auth.Actor{UserID: userID, Role: user.Role(roleStr)}
	if employeeID, ok := claimInt64(claims, "employee_id"); ok {
		actor.EmployeeID = &employeeID
	}
	if sectorID, ok := claimInt64(claims, "sector_id"); ok {
		actor.SectorID = &sectorID
	}
	return actor, true
}

func claimInt64(claims map[string]interface{}, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
