// Package db はステージングデータベースへの接続を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	detailentity "fund_pipeline/internal/feature/detail/domain/entity"
	holdingsentity "fund_pipeline/internal/feature/holdings/domain/entity"
	masterentity "fund_pipeline/internal/feature/master/domain/entity"
	perfentity "fund_pipeline/internal/feature/performance/domain/entity"
)

// OpenDB は環境変数の接続情報でPostgreSQLへ接続します。
// コンテナ起動直後はDBの受け付け開始前であることが多いため、60秒までリトライします。
func OpenDB() *gorm.DB {
	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	ssl := envOr("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, port, user, pass, name, ssl)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// ステージングテーブルのマイグレーション
		if err := db.AutoMigrate(
			&masterentity.Security{},
			&perfentity.DailyNav{},
			&perfentity.PricePoint{},
			&perfentity.Dividend{},
			&detailentity.FundInfo{},
			&detailentity.FundFees{},
			&detailentity.FundRisk{},
			&detailentity.FundPolicy{},
			&holdingsentity.Holding{},
			&holdingsentity.Allocation{},
			&holdingsentity.FundMetric{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
