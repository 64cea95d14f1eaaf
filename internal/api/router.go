package api

import (
	"database/sql"
	"net/http"

	"github.com/rewear-ai/rewear/internal/advisor"
	"github.com/rewear-ai/rewear/internal/charity"
	"github.com/rewear-ai/rewear/internal/outfit"
	"github.com/rewear-ai/rewear/internal/weather"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, adv *advisor.Advisor, locator *charity.Locator, wx *weather.Client, selector *outfit.Selector) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	wardrobeHandler := &WardrobeHandler{DB: db, Advisor: adv}
	outfitHandler := &OutfitHandler{DB: db, Selector: selector, Weather: wx}
	donationsHandler := &DonationsHandler{DB: db}
	charitiesHandler := &CharitiesHandler{DB: db, Locator: locator}
	statsHandler := &StatsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: registration and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated account routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Wardrobe.
	mux.Handle("GET /api/wardrobe", authMW(http.HandlerFunc(wardrobeHandler.List)))
	mux.Handle("POST /api/wardrobe", authMW(http.HandlerFunc(wardrobeHandler.Create)))
	mux.Handle("GET /api/wardrobe/{id}", authMW(http.HandlerFunc(wardrobeHandler.Get)))
	mux.Handle("PUT /api/wardrobe/{id}", authMW(http.HandlerFunc(wardrobeHandler.Update)))
	mux.Handle("DELETE /api/wardrobe/{id}", authMW(http.HandlerFunc(wardrobeHandler.Delete)))
	mux.Handle("PUT /api/wardrobe/{id}/image", authMW(http.HandlerFunc(wardrobeHandler.UploadImage)))
	mux.Handle("GET /api/wardrobe/{id}/image", authMW(http.HandlerFunc(wardrobeHandler.GetImage)))
	mux.Handle("POST /api/wardrobe/{id}/upcycle", authMW(http.HandlerFunc(wardrobeHandler.Upcycle)))

	// Outfit suggestion and weather.
	mux.Handle("POST /api/outfit/suggest", authMW(http.HandlerFunc(outfitHandler.Suggest)))
	mux.Handle("GET /api/weather", authMW(http.HandlerFunc(outfitHandler.GetWeather)))

	// Donations.
	mux.Handle("POST /api/donations", authMW(http.HandlerFunc(donationsHandler.Create)))
	mux.Handle("GET /api/donations", authMW(http.HandlerFunc(donationsHandler.List)))

	// Charities: discovery for everyone, registration for admins.
	mux.Handle("GET /api/charities/nearby", authMW(http.HandlerFunc(charitiesHandler.Nearby)))
	mux.Handle("GET /api/charities", authMW(http.HandlerFunc(charitiesHandler.List)))
	mux.Handle("POST /api/charities", authMW(RequireAdmin(http.HandlerFunc(charitiesHandler.Create))))

	// Stats.
	mux.Handle("GET /api/stats", authMW(http.HandlerFunc(statsHandler.Me)))
	mux.Handle("GET /api/admin/stats", authMW(RequireAdmin(http.HandlerFunc(statsHandler.Admin))))

	return mux
}
