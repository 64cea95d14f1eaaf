package web

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/rewear-ai/rewear/internal/auth"
	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// HomePage handles GET /{$}. Logged-in visitors go straight to the dashboard.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if _, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}
	s.Templates.Render(w, "home.html", &PageData{Title: "ReWear"})
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &PageData{Title: "Sign up"})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	render := func(msg string) {
		s.Templates.Render(w, "register.html", &PageData{Title: "Sign up", Error: msg})
	}

	if username == "" {
		render("Enter a username.")
		return
	}
	if err := model.ValidateEmail(email); err != nil {
		render(err.Error())
		return
	}
	if err := model.ValidatePassword(password); err != nil {
		render(err.Error())
		return
	}

	existing, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		render("Something went wrong, please try again.")
		return
	}
	if existing != nil {
		render("That email is already registered.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		render("Something went wrong, please try again.")
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, username, email, string(hash))
	if err != nil {
		render("Something went wrong, please try again.")
		return
	}

	promoted, err := store.ClaimAdminRole(r.Context(), s.DB, user.ID)
	if err != nil {
		slog.Error("admin claim failed", "user", user.Username, "error", err)
	}
	if promoted {
		user.Role = model.RoleAdmin
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Username, user.Role)
	if err != nil {
		render("Something went wrong, please try again.")
		return
	}

	slog.Info("user registered", "user", user.Username, "role", user.Role)
	setAuthCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	render := func(msg string) {
		s.Templates.Render(w, "login.html", &PageData{Title: "Log in", Error: msg})
	}

	if email == "" || password == "" {
		render("Enter your email and password.")
		return
	}

	user, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil || user == nil {
		render("Wrong email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		render("Wrong email or password.")
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Username, user.Role)
	if err != nil {
		render("Something went wrong, please try again.")
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /logout, revoking the session token.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil {
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
