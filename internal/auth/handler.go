package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authsvc/pkg/binder"
	"github.com/dmitrymomot/authsvc/pkg/respond"
)

// Handler exposes the authentication flow over HTTP. Every failure is
// converted to a response from the fixed mapping in respondError; raw
// internal error text never reaches the client.
type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes returns the authentication endpoints:
//
//	POST /register
//	POST /login
//	GET  /generate_qr/{username}
//	POST /verify_2fa
//	POST /login_2fa
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/generate_qr/{username}", h.generateQR)
	r.Post("/verify_2fa", h.verify2FA)
	r.Post("/login_2fa", h.login2FA)

	return r
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type codeRequest struct {
	Username string `json:"username"`
	OTPCode  string `json:"otp_code"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := binder.JSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	secret, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{
		"message":    "Registration successful",
		"2FA_secret": secret,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := binder.JSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.Login(r.Context(), req.Username, req.Password); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "2FA verification needed"})
}

func (h *Handler) generateQR(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	png, err := h.svc.ProvisioningQR(r.Context(), username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.PNG(w, png)
}

func (h *Handler) verify2FA(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := binder.JSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.VerifyCode(r.Context(), req.Username, req.OTPCode); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "2FA verification passed"})
}

func (h *Handler) login2FA(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := binder.JSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.CompleteLogin(r.Context(), req.Username, req.OTPCode)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Login complete",
		"token":   token,
	})
}

// respondError is the closed error-kind-to-response table. Unknown errors are
// logged server-side and answered with a generic 500 body.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		respond.Error(w, http.StatusBadRequest, "Username and password required")
	case errors.Is(err, ErrMissingCode):
		respond.Error(w, http.StatusBadRequest, "Username and 2FA code required")
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidCode):
		respond.Error(w, http.StatusUnauthorized, "Invalid 2FA code")
	case errors.Is(err, ErrUsernameTaken):
		respond.Error(w, http.StatusInternalServerError, "Username already exists")
	default:
		h.log.ErrorContext(r.Context(), "auth request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
