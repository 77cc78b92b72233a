package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/RoyceAzure/lab/shopcart/internal/util"
)

type UserHandler struct {
	userService    service.IUserService
	sessionService service.ISessionService
}

func NewUserHandler(userService service.IUserService, sessionService service.ISessionService) *UserHandler {
	if userService == nil || sessionService == nil {
		panic("userService and sessionService cannot be nil")
	}
	return &UserHandler{
		userService:    userService,
		sessionService: sessionService,
	}
}

// SignUp 註冊
// form: username, password, email
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid form data")
		return
	}

	user, err := h.userService.Register(
		r.Context(),
		r.FormValue("username"),
		r.FormValue("password"),
		r.FormValue("email"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingUserFields):
			api.ErrorJSON(w, http.StatusBadRequest, err, "one of the required fields is blank")
		case errors.Is(err, service.ErrUserAlreadyExists):
			api.ErrorJSON(w, http.StatusConflict, err, "username already exists")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to create user")
		}
		return
	}

	api.SuccessJSON(w, dto.ConvertUserToDTO(user), "user created, you can now log in")
}

// Login 登入並建立session，session id放HttpOnly cookie
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid form data")
		return
	}

	ctx := r.Context()
	identity, err := h.userService.Login(ctx, r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingUserFields):
			api.ErrorJSON(w, http.StatusBadRequest, err, "one of the required fields is blank")
		case errors.Is(err, service.ErrUserNotFound):
			api.ErrorJSON(w, http.StatusUnauthorized, err, "incorrect username")
		case errors.Is(err, service.ErrIncorrectPassword):
			api.ErrorJSON(w, http.StatusUnauthorized, err, "incorrect password")
		case errors.Is(err, service.ErrUserInactive):
			api.ErrorJSON(w, http.StatusForbidden, err, "your account is disabled, contact administrator")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to login")
		}
		return
	}

	sessionID, err := h.sessionService.CreateSession(ctx, identity)
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(constants.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	api.SuccessJSON(w, dto.ConvertIdentityToDTO(identity), "you are now logged in")
}

// Logout 登出，session與購物車一併銷毀
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := util.GetSessionIDFromContext(ctx)

	if sessionID != "" {
		if err := h.sessionService.DestroySession(ctx, sessionID); err != nil {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to logout")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	api.SuccessJSON(w, nil, "you have been logged out")
}
