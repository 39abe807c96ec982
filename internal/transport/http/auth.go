package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"course-quiz-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var errUnauthenticated = errors.New("authentication required")

type userKey struct{}

// Authenticator resolves HS256 bearer tokens issued by the identity provider.
// The token subject is the numeric user id.
type Authenticator struct {
	secret []byte
	issuer string
}

func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer}
}

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (a *Authenticator) Parse(tokenStr string) (domain.User, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return domain.User{}, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.User{}, errors.New("token subject is not a user id")
	}
	return domain.User{ID: id, Email: claims.Email}, nil
}

// Middleware rejects requests without a valid token. Browsers cannot set
// headers on websocket upgrades, so access_token is also read from the query.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		} else {
			token = r.URL.Query().Get("access_token")
		}
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errUnauthenticated.Error()})
			return
		}
		user, err := a.Parse(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func withUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user attached by Authenticator.Middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey{}).(domain.User)
	return user, ok
}
