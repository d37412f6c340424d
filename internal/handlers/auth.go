package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nsmthethwa44/Technova-API/internal/metrics"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/storage"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
	"github.com/nsmthethwa44/Technova-API/types"
	"golang.org/x/crypto/bcrypt"
)

// Session tokens expire one day after issuance.
const defaultTokenTTL = 24 * time.Hour

const (
	defaultUserRole = "customer"
	adminRole       = "admin"

	tokenCookieName = "token"

	maxMultipartMemory = 32 << 20
	maxUploadBytes     = 8 << 20
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// Claims is the identity payload embedded in session tokens. The
// verifier trusts the signature, not live user state: role changes after
// issuance take effect only when the token expires.
type Claims struct {
	UserID int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Photo  string `json:"photo"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// PublicUser returns the claim set as the user projection handed to clients.
func (c Claims) PublicUser() types.PublicUser {
	return types.PublicUser{
		ID:    c.UserID,
		Name:  c.Name,
		Email: c.Email,
		Photo: c.Photo,
		Role:  c.Role,
	}
}

// AuthHandler provides registration, login, and the token-protected
// account endpoints.
type AuthHandler struct {
	userService *services.UserService
	media       *storage.Storage
	secret      []byte
	tokenTTL    time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, media *storage.Storage, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		media:       media,
		secret:      []byte(jwtSecret),
		tokenTTL:    defaultTokenTTL,
	}
}

// AuthRouter registers the account routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, media *storage.Storage, jwtSecret string) {
	handler := NewAuthHandler(userService, media, jwtSecret)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(handler.RequireAuth).Get("/admin", handler.Admin)
	r.With(handler.RequireAuth, RequireRole(adminRole)).Get("/users", handler.ListUsers)
}

// RequireAuth enforces a valid bearer token and injects the decoded
// claims into the request context. A missing header and a bad token are
// reported differently: 403 versus 400.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return requireAuth(h.secret)(next)
}

// RequireAuth constructs auth middleware for other routers.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return requireAuth([]byte(jwtSecret))
}

func requireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				writeAuthError(w, http.StatusForbidden, "User not authenticated!")
				return
			}

			claims, err := parseClaims(tokenString, secret)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				writeAuthError(w, http.StatusBadRequest, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the verified role claim. It must run
// after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[strings.ToLower(role)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromContext(r.Context())
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "User not authenticated!")
				return
			}
			if _, ok := allowed[strings.ToLower(claims.Role)]; !ok {
				writeAuthError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Register creates a new account from a multipart form (name, email,
// password, role, optional photo file).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeStatus(w, http.StatusBadRequest, "Error", "invalid form")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := normalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")
	role := strings.TrimSpace(r.FormValue("role"))
	if name == "" || email == "" || password == "" {
		writeStatus(w, http.StatusBadRequest, "Error", "All fields are required.")
		return
	}
	if role == "" {
		role = defaultUserRole
	}

	// Fast path only. The unique constraint on users.email is the real
	// duplicate check; two racing registrations can both pass this
	// lookup and one of them will hit ErrConflict on insert.
	if _, err := h.userService.GetByEmail(r.Context(), email); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		writeStatus(w, http.StatusConflict, "Exists", "User already exists. Please log in.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		logger.Get().Error().Err(err).Msg("failed to check existing user")
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		writeStatus(w, http.StatusInternalServerError, "Error", "Failed to register new user account")
		return
	}

	photoKey, err := h.savePhoto(r)
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "Error", err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to hash password")
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		writeStatus(w, http.StatusInternalServerError, "Error", "Failed to register new user account")
		return
	}

	_, err = h.userService.Create(r.Context(), types.User{
		Name:         name,
		Email:        email,
		Role:         role,
		Photo:        photoKey,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			writeStatus(w, http.StatusConflict, "Exists", "User already exists. Please log in.")
			return
		}
		logger.Get().Error().Err(err).Msg("failed to register new user account")
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		writeStatus(w, http.StatusInternalServerError, "Error", "Failed to register new user account")
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	writeStatus(w, http.StatusOK, "success", "Account successfully created!")
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Status  string           `json:"Status"`
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    types.PublicUser `json:"user"`
}

// Login verifies credentials and returns a signed session token, both in
// the body and as a cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Error", err.Error())
		return
	}
	req.Email = normalizeEmail(req.Email)

	user, err := h.userService.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthFailuresTotal.WithLabelValues("user_not_found").Inc()
			writeStatus(w, http.StatusUnauthorized, "Error", "User not found. Please register.")
			return
		}
		logger.Get().Error().Err(err).Msg("failed to load user for login")
		writeStatus(w, http.StatusInternalServerError, "Error", "An error occurred during login.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("bad_password").Inc()
		writeStatus(w, http.StatusUnauthorized, "Error", "Incorrect password.")
		return
	}

	token, err := issueToken(user.Public(), h.secret, h.tokenTTL)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to sign session token")
		writeStatus(w, http.StatusInternalServerError, "Error", "An error occurred during login.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, LoginResponse{
		Status:  "Success",
		Message: "Login successful!",
		Token:   token,
		User:    user.Public(),
	})
}

// AdminResponse echoes the verified identity back to the caller.
type AdminResponse struct {
	Status  string           `json:"Status"`
	Role    string           `json:"role"`
	Message string           `json:"message"`
	User    types.PublicUser `json:"user"`
}

// Admin is the protected diagnostic route: it returns the claims the
// verifier decoded, without touching the database.
func (h *AuthHandler) Admin(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeAuthError(w, http.StatusForbidden, "User not authenticated!")
		return
	}

	writeJSON(w, http.StatusOK, AdminResponse{
		Status:  "success",
		Role:    claims.Role,
		Message: "Protected route accessed",
		User:    claims.PublicUser(),
	})
}

// ListUsers returns every account, newest first.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch users data")
		writeStatus(w, http.StatusInternalServerError, "Error", "Failed to fetch users data")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Status: "success", Result: users})
}

func (h *AuthHandler) savePhoto(r *http.Request) (string, error) {
	if h.media == nil || r.MultipartForm == nil {
		return "", nil
	}
	key, err := saveUpload(r.Context(), h.media, r.MultipartForm, "photo", "photos")
	if err != nil {
		return "", err
	}
	return key, nil
}

func issueToken(user types.PublicUser, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Photo:  user.Photo,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseClaims(tokenString string, secret []byte) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.UserID < 1 {
		return Claims{}, errors.New("missing subject")
	}
	return claims, nil
}

func claimsFromContext(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(contextClaimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("missing claims")
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
