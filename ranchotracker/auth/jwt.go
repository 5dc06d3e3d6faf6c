package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var secret = []byte("very-secret-abc")

// SetSecret replaces the signing secret. Call at startup before serving.
func SetSecret(s string) {
	if s == "" {
		panic("SetSecret(s is empty)")
	}
	secret = []byte(s)
}

const tokenTTL = 30 * 24 * time.Hour

type Claims struct {
	TenantID string `json:"tenantID,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func IssueToken(memberID, tenantID, role string) string {
	if memberID == "" {
		panic("IssueToken(memberID is empty)")
	}
	claims := &Claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		panic(err.Error())
	}
	return signed
}

type AuthInfo struct {
	MemberID string
	TenantID string
	Role     string
}

var ErrNoToken = errors.New("no authorization token")

func ParseToken(s string) (authInfo AuthInfo, err error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(s, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return
	}
	if !token.Valid {
		return authInfo, jwt.ErrSignatureInvalid
	}
	if claims.Subject == "" {
		return authInfo, errors.New("JWT is missing 'sub' claim")
	}
	return AuthInfo{MemberID: claims.Subject, TenantID: claims.TenantID, Role: claims.Role}, nil
}

func Authenticate(w http.ResponseWriter, r *http.Request, required bool) (authInfo AuthInfo, err error) {
	var s string
	if a := r.Header.Get("Authorization"); strings.HasPrefix(a, "Bearer ") {
		s = a[7:]
	}

	defer func() {
		if err != nil && required {
			w.Header().Add("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(err.Error()))
		}
	}()

	if s == "" {
		err = ErrNoToken
		return
	}
	authInfo, err = ParseToken(s)
	return
}
