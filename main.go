package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/tealeg/xlsx"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ashishpimple94/boultindia-api/cart"
	"github.com/ashishpimple94/boultindia-api/checkout"
	"github.com/ashishpimple94/boultindia-api/events"
	"github.com/ashishpimple94/boultindia-api/models"
	"github.com/ashishpimple94/boultindia-api/routes"
)

func main() {
	log.Println("Starting storefront API...")

	_ = godotenv.Load()

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Variant{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentReceipt{},
		&models.Review{},
		&models.Banner{},
		&models.Enquiry{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	cartStore := cart.NewStore(initCartSnapshots())

	var publisher checkout.Publisher
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		pub, err := events.NewPublisher(amqpURL, "storefront.orders")
		if err != nil {
			log.Printf("AMQP unavailable, order events disabled: %v", err)
		} else {
			publisher = pub
			defer pub.Close()
		}
	}

	gateway := checkout.NewRazorpayGateway(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	checkoutSvc := checkout.NewService(
		checkout.NewGormOrders(db),
		checkout.NewGormReceipts(db),
		gateway,
		publisher,
	)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	uploadsDir := os.Getenv("UPLOAD_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	r.Static("/uploads", uploadsDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Backend is running", "time": time.Now().UTC()})
	})

	routes.SetupRoutes(r, routes.Deps{
		DB:        db,
		CartStore: cartStore,
		Checkout:  checkoutSvc,
		Publisher: publisher,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server running on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Export the order ledger daily at 2 AM, keep 4 days of files.
	if ledgerDir := os.Getenv("LEDGER_DIR"); ledgerDir != "" {
		g.Go(func() error {
			runDailyLedgerExport(ctx, db, ledgerDir, 4*24*time.Hour, 2, 0)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
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
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

// initCartSnapshots picks the cart snapshot backend: Redis when
// configured, process memory otherwise.
func initCartSnapshots() cart.Snapshots {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, cart snapshots held in memory")
		return cart.NewMemorySnapshots()
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}

	ttl := 7 * 24 * time.Hour
	if raw := os.Getenv("CART_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	return cart.NewRedisSnapshots(redis.NewClient(opts), ttl)
}

// runDailyLedgerExport writes the full order book to an xlsx file at a
// fixed hour every day and removes files older than retention.
func runDailyLedgerExport(ctx context.Context, db *gorm.DB, dir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("Next order ledger export scheduled at: %s", next.Format("2006-01-02 15:04:05"))

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
		}

		if err := exportLedger(db, dir); err != nil {
			log.Printf("Failed to export order ledger: %v", err)
		}
		cleanupOldLedgers(dir, retention)
	}
}

func exportLedger(db *gorm.DB, dir string) error {
	var orders []models.Order
	if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "Customer", "Email", "Amount", "PaymentMethod", "PaymentStatus", "Status", "CreatedAt"} {
		headerRow.AddCell().SetValue(h)
	}
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Customer)
		row.AddCell().SetValue(o.Email)
		row.AddCell().SetValue(o.Amount)
		row.AddCell().SetValue(o.PaymentMethod)
		row.AddCell().SetValue(string(o.PaymentStatus))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	path := filepath.Join(dir, "orders_"+time.Now().Format("2006-01-02_15-04-05")+".xlsx")
	if err := file.Save(path); err != nil {
		return err
	}
	log.Printf("Order ledger exported to %s", path)
	return nil
}

func cleanupOldLedgers(dir string, retention time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Failed to read ledger directory: %v", err)
		return
	}

	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Printf("Failed to remove old ledger %s: %v", path, err)
			} else {
				log.Printf("Removed old ledger: %s", path)
			}
		}
	}
}
