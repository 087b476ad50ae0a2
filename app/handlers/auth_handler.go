package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render    *render.Render
	userRepo  repositories.UserRepositoryImpl
	authSvc   *services.AuthService
	validator *validator.Validate
	logger    zerolog.Logger
}

func NewAuthHandler(rnd *render.Render, userRepo repositories.UserRepositoryImpl, authSvc *services.AuthService, v *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		render:    rnd,
		userRepo:  userRepo,
		authSvc:   authSvc,
		validator: v,
		logger:    logger,
	}
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=20"`
	Address1  string `json:"address1" validate:"max=255"`
	Address2  string `json:"address2" validate:"max=255"`
	City      string `json:"city" validate:"max=100"`
	PostCode  string `json:"post_code" validate:"max=10"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	ctx := r.Context()

	existing, err := h.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		h.logger.Error().Err(err).Msg("register: email lookup failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "email is already registered")
		return
	}

	existing, err = h.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("register: username lookup failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "username is already taken")
		return
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		h.logger.Error().Err(err).Msg("register: password hashing failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleCustomer,
		Phone:     req.Phone,
		Address1:  req.Address1,
		Address2:  req.Address2,
		City:      req.City,
		PostCode:  req.PostCode,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		h.logger.Error().Err(err).Msg("register: user creation failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.authSvc.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error().Err(err).Msg("login: email lookup failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Same message for unknown email and wrong password; the response must
	// not reveal which one failed.
	if user == nil || !helpers.PasswordCompare(user.Password, req.Password) {
		helpers.RespondError(h.render, w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.authSvc.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)
	_ = h.render.JSON(w, http.StatusOK, user)
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Address1  *string `json:"address1" validate:"omitempty,max=255"`
	Address2  *string `json:"address2" validate:"omitempty,max=255"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	PostCode  *string `json:"post_code" validate:"omitempty,max=10"`
}

// UpdateProfile merges the submitted fields over the stored record; absent
// fields keep their current values.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address1 != nil {
		user.Address1 = *req.Address1
	}
	if req.Address2 != nil {
		user.Address2 = *req.Address2
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.PostCode != nil {
		user.PostCode = *req.PostCode
	}

	if err := h.userRepo.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("profile update failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, user)
}
