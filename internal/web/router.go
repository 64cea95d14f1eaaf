package web

import (
	"database/sql"
	"net/http"

	"github.com/rewear-ai/rewear/internal/advisor"
	"github.com/rewear-ai/rewear/internal/charity"
	"github.com/rewear-ai/rewear/internal/outfit"
	"github.com/rewear-ai/rewear/internal/weather"
	webembed "github.com/rewear-ai/rewear/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, adv *advisor.Advisor, locator *charity.Locator, wx *weather.Client, selector *outfit.Selector) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
		Advisor:   adv,
		Locator:   locator,
		Weather:   wx,
		Selector:  selector,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /dashboard", cookieAuth(http.HandlerFunc(s.Dashboard)))
	mux.Handle("POST /dashboard/suggest", cookieAuth(http.HandlerFunc(s.SuggestSubmit)))

	mux.Handle("GET /wardrobe", cookieAuth(http.HandlerFunc(s.WardrobePage)))
	mux.Handle("GET /wardrobe/add", cookieAuth(http.HandlerFunc(s.WardrobeAddPage)))
	mux.Handle("POST /wardrobe/add", cookieAuth(http.HandlerFunc(s.WardrobeAddSubmit)))
	mux.Handle("GET /wardrobe/{id}", cookieAuth(http.HandlerFunc(s.WardrobeDetailPage)))
	mux.Handle("POST /wardrobe/{id}", cookieAuth(http.HandlerFunc(s.WardrobeUpdateSubmit)))
	mux.Handle("POST /wardrobe/{id}/delete", cookieAuth(http.HandlerFunc(s.WardrobeDeleteSubmit)))
	mux.Handle("GET /wardrobe/{id}/image", cookieAuth(http.HandlerFunc(s.WardrobeImageGet)))
	mux.Handle("GET /wardrobe/{id}/upcycle", cookieAuth(http.HandlerFunc(s.UpcyclePage)))

	mux.Handle("GET /donate", cookieAuth(http.HandlerFunc(s.DonatePage)))
	mux.Handle("POST /donate", cookieAuth(http.HandlerFunc(s.DonateSubmit)))
	mux.Handle("GET /donate/success/{id}", cookieAuth(http.HandlerFunc(s.DonateSuccessPage)))

	mux.Handle("GET /admin", cookieAuth(http.HandlerFunc(s.AdminPage)))
	mux.Handle("POST /admin/charities", cookieAuth(http.HandlerFunc(s.AdminCharitySubmit)))

	return mux, nil
}
