package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/envelope"
	commontransport "github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/transport"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/user/domain/model"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/user/domain/service"
)

func Router(users service.UserService) http.Handler {
	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()
	s.Use(commontransport.LogMiddleware)

	h := &handler{users: users}
	s.HandleFunc("/register", h.register).Methods(http.MethodPost)
	s.HandleFunc("/login", h.login).Methods(http.MethodPost)
	s.HandleFunc("/users/{email}", h.getUser).Methods(http.MethodGet)
	return r
}

type handler struct {
	users service.UserService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"Malformed request body"})
		return
	}

	user, err := h.users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		writeUserError(w, err, req.Email)
		return
	}

	envelope.WriteSuccess(w, "Registered", map[string]interface{}{
		"email":     user.Email,
		"name":      user.Name,
		"createdAt": user.CreatedAt.Format(time.RFC3339),
	})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"Malformed request body"})
		return
	}

	user, token, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		writeUserError(w, err, req.Email)
		return
	}

	envelope.WriteSuccess(w, "Login successful", map[string]interface{}{
		"token": token,
		"email": user.Email,
	})
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	user, err := h.users.GetByEmail(email)
	if errors.Is(err, model.ErrUserNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		writeUserError(w, err, email)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(userResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		log.WithField("err", err).Error("write response")
	}
}

func writeUserError(w http.ResponseWriter, err error, email string) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"Name is required"})
	case errors.Is(err, service.ErrEmailRequired):
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"Email is required"})
	case errors.Is(err, service.ErrPasswordTooShort):
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"Password must be at least 8 characters"})
	case errors.Is(err, model.ErrEmailTaken):
		envelope.WriteFailure(w, http.StatusBadRequest, "Registration failed", []string{fmt.Sprintf("Email already used: %s", email)})
	case errors.Is(err, service.ErrEmailNotFound):
		envelope.WriteFailure(w, http.StatusBadRequest, "Invalid credentials", []string{"Email not found"})
	case errors.Is(err, service.ErrWrongPassword):
		envelope.WriteFailure(w, http.StatusBadRequest, "Invalid credentials", []string{"Wrong password"})
	default:
		log.WithField("err", err).Error("user request failed")
		envelope.WriteFailure(w, http.StatusInternalServerError, "Internal error", nil)
	}
}
