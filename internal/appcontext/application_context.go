package appcontext

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Dominion116/StyleHub/internal/config"
	"github.com/Dominion116/StyleHub/internal/infra/producer"
	"github.com/Dominion116/StyleHub/internal/infra/repository/db"
	"github.com/Dominion116/StyleHub/internal/infra/repository/redis_repo"
	"github.com/Dominion116/StyleHub/internal/infra/settlement"
	"github.com/Dominion116/StyleHub/internal/service"
)

// 創世手續費，owner之後可透過setPlatformFee調整
const genesisFeePercent = 2

type ApplicationContext struct {
	Cf               *config.Config
	DbConn           *gorm.DB
	MarketDB         *db.MarketDB
	RedisClient      *redis.Client
	ProductCache     *redis_repo.ProductCache
	EventProducer    *producer.MarketEventProducer
	SettlementClient *settlement.Client
	MarketService    service.IMarketService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpdbConn()
	if err != nil {
		return err
	}
	err = app.setUpMarketDB()
	if err != nil {
		return err
	}
	err = app.setUpProductCache()
	if err != nil {
		return err
	}
	err = app.setUpEventProducer()
	if err != nil {
		return err
	}
	err = app.setUpSettlementClient()
	if err != nil {
		return err
	}
	err = app.setUpMarketService()
	if err != nil {
		return err
	}
	return nil
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpMarketDB() error {
	log.Printf("Start setup market store")
	dao := db.NewDbDao(app.DbConn)
	if err := dao.InitMigrate(); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}

	marketDB := db.NewMarketDB(dao)

	if app.Cf.OwnerAddress == "" {
		return fmt.Errorf("OWNER_ADDRESS is not configured")
	}
	// 建立創世帳本狀態，已存在則不動作
	if err := marketDB.InitState(context.Background(), app.Cf.OwnerAddress, genesisFeePercent); err != nil {
		return fmt.Errorf("init ledger state: %w", err)
	}

	app.MarketDB = marketDB
	log.Printf("Finish setup market store")
	return nil
}

func (app *ApplicationContext) setUpProductCache() error {
	log.Printf("Start setup product cache")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPas,
	})
	app.ProductCache = redis_repo.NewProductCache(app.RedisClient)
	log.Printf("Finish setup product cache")
	return nil
}

func (app *ApplicationContext) setUpEventProducer() error {
	log.Printf("Start setup event producer")
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is not configured")
	}
	app.EventProducer = producer.NewMarketEventProducer(brokers, app.Cf.KafkaTopic)
	log.Printf("Finish setup event producer")
	return nil
}

func (app *ApplicationContext) setUpSettlementClient() error {
	log.Printf("Start setup settlement client")
	if app.Cf.SettlementUrl == "" {
		return fmt.Errorf("SETTLEMENT_URL is not configured")
	}
	app.SettlementClient = settlement.NewClient(app.Cf.SettlementUrl)
	log.Printf("Finish setup settlement client")
	return nil
}

func (app *ApplicationContext) setUpMarketService() error {
	log.Printf("Start setup market service")
	app.MarketService = service.NewMarketService(app.MarketDB, app.SettlementClient, app.EventProducer, app.ProductCache)
	log.Printf("Finish setup market service")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.EventProducer != nil {
			log.Printf("Closing event producer...")
			if err := app.EventProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("event producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis shutdown error: %v", err)
			}
		}

		// 關閉 DB
		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
