package app

import (
	"log"
	"os"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/store"

	"github.com/gin-gonic/gin"
)

// BuildApp menyiapkan infrastruktur lalu mendaftarkan seluruh modul.
// Backend blob dipilih lewat STORE_BACKEND (redis default, postgres
// sebagai alternatif); Redis selalu dibutuhkan untuk idempotency dan
// notifikasi perubahan.
func BuildApp(router *gin.Engine) error {
	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	var blobStore store.Store
	switch os.Getenv("STORE_BACKEND") {
	case "postgres":
		gormDB, err := connection.ConnectGORMWithRetry(
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_SSLMODE"),
			5,
		)
		if err != nil {
			return err
		}
		if err := store.Migrate(gormDB); err != nil {
			return err
		}
		log.Println("✅ Database connection established")
		blobStore = store.NewPostgresStore(gormDB)
	default:
		blobStore = store.NewRedisStore(redisClient)
	}

	return registerModules(router, blobStore, redisClient)
}
