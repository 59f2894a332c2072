package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	jwtSecret    string
	passwordHash string
}

func newAuthHandler(jwtSecret, passwordHash string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		jwtSecret:    jwtSecret,
		passwordHash: passwordHash,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionResponse struct {
	Success   bool      `json:"success"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// login exchanges the admin password for a bearer token
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Password is required"))
			return
		}

		if err := auth.CheckPassword(h.passwordHash, req.Password); err != nil {
			h.logger.Warn().Str("remote", r.RemoteAddr).Msg("admin login failed")
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		token, expiresAt, err := auth.GenerateToken(h.jwtSecret, auth.TokenExpiry)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to generate token", err))
			return
		}

		h.logger.Info().Str("remote", r.RemoteAddr).Msg("admin logged in")
		h.responder.WriteJSON(w, loginResponse{Success: true, Token: token, ExpiresAt: expiresAt.UTC()})
	}
}

// getSession reports the token the request was authenticated with
func (h authHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxGetClaims(r.Context())
		if claims == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		resp := sessionResponse{Success: true, Subject: claims.Subject}
		if claims.ExpiresAt != nil {
			resp.ExpiresAt = claims.ExpiresAt.UTC()
		}
		h.responder.WriteJSON(w, resp)
	}
}
