package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/blueprint-apparel/shop-api/cache"
	"github.com/blueprint-apparel/shop-api/middleware"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/blueprint-apparel/shop-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestSession{},
		&models.Size{},
		&models.Color{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Bundle{},
		&models.BundleItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.BundleCartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Optional Redis cache for bundle availability
	cache.Init()

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Per-IP rate limit: 10 req/s with a burst of 30
	limiter := middleware.NewRateLimiter(10, 30)
	r.Use(limiter.Limit())

	// Setup routes
	routes.SetupRoutes(r, db)

	// Sweep expired guest sessions and their abandoned carts daily at 3 AM
	go startGuestSessionSweep(db, 3, 0)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// startGuestSessionSweep deletes expired guest sessions and the carts keyed
// by them, daily at a fixed hour.
func startGuestSessionSweep(db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next guest session sweep scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		if err := sweepExpiredGuestSessions(db); err != nil {
			log.Printf("❌ Guest session sweep failed: %v", err)
		} else {
			log.Println("✅ Guest session sweep complete")
		}
	}
}

func sweepExpiredGuestSessions(db *gorm.DB) error {
	var tokens []string
	if err := db.Model(&models.GuestSession{}).
		Where("expires_at < ?", time.Now()).
		Pluck("token", &tokens).Error; err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var cartIDs []uint
		if err := tx.Model(&models.Cart{}).
			Where("session_token IN ?", tokens).
			Pluck("id", &cartIDs).Error; err != nil {
			return err
		}
		if len(cartIDs) > 0 {
			if err := tx.Where("cart_id IN ?", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cart_id IN ?", cartIDs).Delete(&models.BundleCartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", cartIDs).Delete(&models.Cart{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("token IN ?", tokens).Delete(&models.GuestSession{}).Error
	})
}
