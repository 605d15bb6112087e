package handlers

import (
	"errors"
	"market/internal/apperr"
	"market/internal/config"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — регистрация, вход и профиль.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type CoordinateDTO struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (c *CoordinateDTO) toService() service.Coordinate {
	if c == nil {
		return service.Coordinate{}
	}
	return service.Coordinate{Lat: c.Lat, Lng: c.Lng}
}

type UserCreateRequest struct {
	Username    string         `json:"username" validate:"notblank" msg:"아이디는 필수로 입력해야 됩니다."`
	Password    string         `json:"password" validate:"notblank" msg:"비밀번호는 필수로 입력해야 됩니다."`
	Nickname    string         `json:"nickname"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber"`
	Address     string         `json:"address" validate:"notblank" msg:"주소는 필수로 입력해야 됩니다."`
	UserImage   string         `json:"userImage"`
	Coordinate  *CoordinateDTO `json:"coordinate" validate:"required" msg:"좌표는 필수로 입력해야 됩니다."`
}

type UserLoginRequest struct {
	Username string `json:"username" validate:"notblank" msg:"아이디는 필수로 입력해야 됩니다."`
	Password string `json:"password" validate:"notblank" msg:"비밀번호는 필수로 입력해야 됩니다."`
}

type CoordinateUpdateRequest struct {
	Coordinate *CoordinateDTO `json:"coordinate" validate:"required" msg:"좌표는 필수로 입력해야 합니다."`
}

type SearchScopeUpdateRequest struct {
	SearchScope model.SearchScope `json:"searchScope" validate:"required,oneof=NARROW NORMAL WIDE" msg:"검색 범위는 필수로 입력해야 합니다."`
}

// UserResponse профиль без пароля.
type UserResponse struct {
	ID          int64             `json:"id"`
	Username    string            `json:"username"`
	Nickname    string            `json:"nickname"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phoneNumber"`
	Address     string            `json:"address"`
	UserImage   string            `json:"userImage"`
	Coordinate  Point             `json:"coordinate"`
	SearchScope model.SearchScope `json:"searchScope"`
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Nickname:    u.Nickname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		UserImage:   u.UserImage,
		Coordinate:  Point{Lat: u.Latitude, Lng: u.Longitude},
		SearchScope: u.SearchScope,
	}
}

// Join регистрация пользователя
func (h *UserHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	u, err := h.UserService.CreateUser(r.Context(), service.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Nickname:    req.Nickname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		UserImage:   req.UserImage,
		Coordinate:  req.Coordinate.toService(),
	})
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toUserResponse(u))
}

// Login выдаёт JWT в теле ответа и в cookie
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req UserLoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	u, token, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrLoginFailed) {
			h.Logger.Infow("login failed", "username", req.Username)
			writeEnvelope(w, http.StatusUnauthorized, apperr.ErrLoginFailed.Message, nil)
			return
		}
		writeError(w, h.Logger, r, err)
		return
	}
	middleware.SetLoginCookie(w, token, h.Config.TokenTTL)
	h.Logger.Infow("user logged in", "user_id", u.ID)
	ok(w, map[string]string{"accessToken": token})
}

// Me профиль текущего пользователя
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	u, err := h.UserService.Me(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toUserResponse(u))
}

func (h *UserHandler) UpdateCoordinate(w http.ResponseWriter, r *http.Request) {
	var req CoordinateUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	u, err := h.UserService.UpdateCoordinate(r.Context(), userID, req.Coordinate.toService())
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toUserResponse(u))
}

func (h *UserHandler) UpdateSearchScope(w http.ResponseWriter, r *http.Request) {
	var req SearchScopeUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	u, err := h.UserService.UpdateSearchScope(r.Context(), userID, req.SearchScope)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toUserResponse(u))
}

// Withdraw удаляет аккаунт со всеми объявлениями и сбрасывает cookie
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.UserService.Withdraw(r.Context(), userID); err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	middleware.ClearLoginCookie(w)
	ok(w, nil)
}
