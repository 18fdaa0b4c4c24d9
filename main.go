package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/SerikaliMap/serikali-backend/internal/civics"
	"github.com/SerikaliMap/serikali-backend/internal/config"
	"github.com/SerikaliMap/serikali-backend/internal/db"
	"github.com/SerikaliMap/serikali-backend/internal/geocoding"
	"github.com/SerikaliMap/serikali-backend/internal/mail"
	"github.com/SerikaliMap/serikali-backend/internal/metrics"
	"github.com/SerikaliMap/serikali-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect()
	civics.Init()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	// The Mapbox client may be nil (no token); lookups then degrade to
	// not-found instead of crashing, which keeps the rest of the API up.
	var geo civics.Geocoder
	if mapbox := geocoding.NewClient(); mapbox != nil {
		rc := geocoding.OpenRedis(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
		if rc != nil {
			log.Println("Geocode caching enabled")
		}
		geo = geocoding.NewCachedForwarder(mapbox, rc, cfg.GeocodeCacheTTL())
	} else {
		log.Println("MAPBOX_ACCESS_TOKEN not set; location search will return 404")
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)
	r.Handle("/metrics", metrics.Handler())

	civics.RegisterRoutes(r, geo, cfg.GeocoderTimeout())

	sender := mail.NewMailgunSender(cfg.Mail.Recipient)
	if sender == nil {
		log.Println("MAILGUN_DOMAIN/MAILGUN_API_KEY not set; contact mail will return 500")
	}
	contact := &mail.Handler{Sender: sender}
	mailLimiter := middleware.NewRateLimiter(cfg.Mail.RatePerHour, time.Hour)
	r.With(mailLimiter.Middleware).Post("/mail", contact.Post)

	fmt.Printf("Server listening on port :%s...\n", port)

	if err := http.ListenAndServe("0.0.0.0:"+port, r); err != nil {
		log.Fatal(err)
	}
}
