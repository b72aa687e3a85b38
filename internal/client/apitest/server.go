// Package apitest provides an in-process fake of the Alpha inventory API for
// tests. It keeps its state in memory and issues real (HS256) JWT access
// tokens so that expiry and refresh can be exercised end to end.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BasePath is where the API is mounted, matching the production layout.
const BasePath = "/api/v1"

type user struct {
	id       int64
	name     string
	email    string
	password string
}

type material struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	StockQuantity float64 `json:"stockQuantity"`
}

type unit struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type bomLine struct {
	RawMaterialID   int64   `json:"rawMaterialId"`
	RawMaterialName string  `json:"rawMaterialName,omitempty"`
	QuantityNeeded  float64 `json:"quantityNeeded"`
}

type product struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Value         float64   `json:"value"`
	UnitOfMeasure string    `json:"unitOfMeasure,omitempty"`
	BOM           []bomLine `json:"bom"`
}

// Server is the fake backend. Use New to start one.
type Server struct {
	*httptest.Server

	secret    []byte
	accessTTL time.Duration

	mu          sync.Mutex
	nextID      int64
	users       map[string]*user
	refresh     map[string]string // refresh token -> email
	resets      map[string]string // reset token -> email
	revokedJWT  map[string]bool
	products    map[int64]*product
	materials   map[int64]*material
	units       map[int64]*unit
	suggestions json.RawMessage

	refreshCalls atomic.Int32
	requests     atomic.Int32
}

type Option func(*Server)

// WithAccessTTL sets the lifetime of issued access tokens.
func WithAccessTTL(d time.Duration) Option {
	return func(s *Server) { s.accessTTL = d }
}

func New(opts ...Option) *Server {
	s := &Server{
		secret:     []byte(uuid.NewString()),
		accessTTL:  15 * time.Minute,
		users:      map[string]*user{},
		refresh:    map[string]string{},
		resets:     map[string]string{},
		revokedJWT: map[string]bool{},
		products:   map[int64]*product{},
		materials:  map[int64]*material{},
		units:      map[int64]*unit{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// BaseURL is the API root to hand to client.New.
func (s *Server) BaseURL() string {
	return s.URL + BasePath
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.countRequests)

	api := r.PathPrefix(BasePath).Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", s.handleForgot).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", s.handleReset).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireAuth)
	authed.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/me/password", s.handleChangePassword).Methods(http.MethodPut)

	authed.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	authed.HandleFunc("/products", s.createProduct).Methods(http.MethodPost)
	authed.HandleFunc("/products/{id}", s.getProduct).Methods(http.MethodGet)
	authed.HandleFunc("/products/{id}", s.updateProduct).Methods(http.MethodPut)
	authed.HandleFunc("/products/{id}", s.deleteProduct).Methods(http.MethodDelete)
	authed.HandleFunc("/products/{id}/materials", s.getMaterials).Methods(http.MethodGet)
	authed.HandleFunc("/products/{id}/materials", s.putMaterials).Methods(http.MethodPut)

	authed.HandleFunc("/raw-materials", s.listMaterials).Methods(http.MethodGet)
	authed.HandleFunc("/raw-materials", s.createMaterial).Methods(http.MethodPost)
	authed.HandleFunc("/raw-materials/{id}", s.updateMaterial).Methods(http.MethodPut)
	authed.HandleFunc("/raw-materials/{id}", s.deleteMaterial).Methods(http.MethodDelete)

	authed.HandleFunc("/units-of-measure", s.listUnits).Methods(http.MethodGet)
	authed.HandleFunc("/units-of-measure", s.createUnit).Methods(http.MethodPost)
	authed.HandleFunc("/units-of-measure/{id}", s.getUnit).Methods(http.MethodGet)
	authed.HandleFunc("/units-of-measure/{id}", s.updateUnit).Methods(http.MethodPut)
	authed.HandleFunc("/units-of-measure/{id}", s.deleteUnit).Methods(http.MethodDelete)

	authed.HandleFunc("/production/suggestions", s.handleSuggestions).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	return r
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token expired")
			return
		}

		s.mu.Lock()
		revoked := s.revokedJWT[raw]
		s.mu.Unlock()
		if revoked {
			writeError(w, http.StatusUnauthorized, "Token expired")
			return
		}

		next.ServeHTTP(w, r.WithContext(withEmail(r.Context(), claims["email"])))
	})
}

func (s *Server) issue(u *user) (map[string]any, error) {
	now := time.Now()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   jsonID(u.id),
		"email": u.email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
		"jti":   uuid.NewString(),
	}).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	s.refresh[refresh] = u.email

	return map[string]any{
		"tokenType":        "Bearer",
		"accessToken":      access,
		"refreshToken":     refresh,
		"expiresInSeconds": int64(s.accessTTL / time.Second),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"status":  status,
		"error":   http.StatusText(status),
		"message": msg,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return false
	}
	return true
}
