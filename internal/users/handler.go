package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	msgWelcome            = "Bienvenido!"
	msgWrongCredentials   = "Usuario o contraseña incorrectos"
	msgUsernameTaken      = "El usuario ya existe"
	msgEmailTaken         = "El email ya está registrado"
	msgRegisterSuccessful = "Registro exitoso! Ahora puedes iniciar sesión"
	msgLoggedOut          = "Has cerrado sesión"
)

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type loginSessions interface {
	NewSession(ctx context.Context, userID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	repo           usersRepo
	sessions       loginSessions
	metricsManager *metrics.Manager
}

func NewHandler(
	repo usersRepo,
	sessions loginSessions,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		sessions:       sessions,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginRateLimitAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/login", handler.handleLoginPage).Methods("GET", "OPTIONS").Name("login-page")
	mainRouter.HandleFunc("/register", handler.handleRegisterPage).Methods("GET", "OPTIONS").Name("register-page")
	mainRouter.HandleFunc("/logout", handler.handleLogout).Methods("GET", "OPTIONS").Name("logout")

	// rate limit the credential endpoints to prevent abuse
	rateLimit := middleware.RateLimit(rateLimiter, "login", loginRateLimitAllowedPerMin, handler.metricsManager)
	mainRouter.Handle("/login", rateLimit(http.HandlerFunc(handler.handleLogin))).Methods("POST").Name("login")
	mainRouter.Handle("/register", rateLimit(http.HandlerFunc(handler.handleRegister))).Methods("POST").Name("register")
}

// handleRoot is the landing page; an authenticated session goes straight to
// the dashboard.
func (handler *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if _, logged := middleware.UserIDFromContext(r.Context()); logged {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	pkg.WriteJSONResponseOK(w, `{"service":"gymtracker","status":"ok"}`)
}

func (handler *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, logged := middleware.UserIDFromContext(r.Context()); logged {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	pkg.WriteJSONResponseOK(w, `{"page":"login"}`)
}

func (handler *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSONResponseOK(w, `{"page":"register"}`)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.login")
	defer span.End()

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	isJSONRequest := r.Header.Get("Content-Type") == "application/json"
	if isJSONRequest {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	rejectLogin := func() {
		if isJSONRequest {
			pkg.WriteJSONError(w, msgWrongCredentials, http.StatusUnauthorized)
			return
		}
		pkg.RedirectWithStatus(w, r, "/login", msgWrongCredentials)
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		rejectLogin()
		return
	}

	user, err := handler.repo.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Errorf("login, get user %s: %s", loginReq.Username, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		// same generic rejection as a wrong password, do not reveal
		// which of the two fields was wrong
		log.Tracef("[username] failed login attempt for user: %s", loginReq.Username)
		rejectLogin()
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", loginReq.Username)
		rejectLogin()
		return
	}

	token, err := handler.sessions.NewSession(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLogins.Inc()
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Tracef("new login success: %s", user.Username)

	if isJSONRequest {
		pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s"}`, token))
		return
	}
	pkg.RedirectWithStatus(w, r, "/dashboard", msgWelcome)
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.register")
	defer span.End()

	type registerRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var registerReq registerRequest
	isJSONRequest := r.Header.Get("Content-Type") == "application/json"
	if isJSONRequest {
		if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
			log.Errorf("register, unmarshal json params: %s", err)
			http.Error(w, "register failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("register failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		registerReq = registerRequest{
			Username: r.Form.Get("username"),
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if registerReq.Username == "" || registerReq.Email == "" || registerReq.Password == "" {
		http.Error(w, "error, username, email or password empty", http.StatusBadRequest)
		return
	}

	rejectRegister := func(message string) {
		if isJSONRequest {
			pkg.WriteJSONError(w, message, http.StatusConflict)
			return
		}
		pkg.RedirectWithStatus(w, r, "/register", message)
	}

	if _, err := handler.repo.GetByUsername(ctx, registerReq.Username); err == nil {
		rejectRegister(msgUsernameTaken)
		return
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Errorf("register, check username %s: %s", registerReq.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if _, err := handler.repo.GetByEmail(ctx, registerReq.Email); err == nil {
		rejectRegister(msgEmailTaken)
		return
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Errorf("register, check email: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// never store the plaintext, only the salted bcrypt hash
	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	addedUser, err := handler.repo.Add(ctx, User{
		Username:     registerReq.Username,
		Email:        registerReq.Email,
		PasswordHash: passwordHash,
	})
	switch {
	case errors.Is(err, ErrUsernameTaken):
		rejectRegister(msgUsernameTaken)
		return
	case errors.Is(err, ErrEmailTaken):
		rejectRegister(msgEmailTaken)
		return
	case err != nil:
		log.Errorf("register, add user: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterRegisteredUsers.Inc()
	log.Debugf("new user registered: %s [%d]", addedUser.Username, addedUser.ID)

	if isJSONRequest {
		userJson, err := json.Marshal(addedUser)
		if err != nil {
			log.Errorf("register, marshal user: %s", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusCreated)
		return
	}
	pkg.RedirectWithStatus(w, r, "/login", msgRegisterSuccessful)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.logout")
	defer span.End()

	if token := auth.TokenFromRequest(r); token != "" {
		if err := handler.sessions.Logout(ctx, token); err != nil {
			// logout is best effort, a stale token just gets its cookie dropped
			log.Tracef("logout token: %s", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	pkg.RedirectWithStatus(w, r, "/", msgLoggedOut)
}
