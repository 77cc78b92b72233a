package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/RoyceAzure/lab/shopcart/internal/config"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/keylock"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf            *config.Config
	Logger        *zerolog.Logger
	DbConn        *gorm.DB
	DbDao         *db.DbDao
	RedisConn     *redis.Client
	CartLocks     *keylock.KeyedMutex
	OrderProducer producer.IOrderProducer

	SessionService  service.ISessionService
	UserService     service.IUserService
	ProductService  service.IProductService
	CartService     service.ICartService
	CheckoutService service.ICheckoutService
	OrderService    service.IOrderService
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
	app.setUpLogger()

	err := app.setUpDbConn()
	if err != nil {
		return err
	}

	err = app.setUpRedisConn()
	if err != nil {
		return err
	}

	app.setUpOrderProducer()
	app.setUpServices()

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("module", app.Cf.ModulerName).
		Logger()
	app.Logger = &logger
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	app.DbDao = db.NewDbDao(conn)

	// schema migration，冪等
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpRedisConn() error {
	log.Printf("Start setup redis connection")
	conn, err := redis_repo.GetRedisConn(app.Cf.RedisAddr, app.Cf.RedisPassword, app.Cf.RedisDB)
	if err != nil {
		return err
	}
	app.RedisConn = conn
	log.Printf("Finish setup redis connection")
	return nil
}

// setUpOrderProducer KAFKA_BROKERS沒設定就不發事件
func (app *ApplicationContext) setUpOrderProducer() {
	if app.Cf.KafkaBrokers == "" {
		log.Printf("Kafka brokers not configured, order events disabled")
		return
	}
	log.Printf("Start setup order producer")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.OrderProducer = producer.NewOrderProducer(brokers, app.Cf.KafkaTopic)
	log.Printf("Finish setup order producer")
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")

	cartRepo := redis_repo.NewCartRepo(app.RedisConn)
	sessionRepo := redis_repo.NewSessionRepo(app.RedisConn)
	productCache := redis_repo.NewProductCache(app.RedisConn)
	productRepo := db.NewProductRepo(app.DbDao)
	orderRepo := db.NewOrderRepo(app.DbDao)
	userRepo := db.NewUserRepo(app.DbDao)

	app.CartLocks = keylock.New()

	app.SessionService = service.NewSessionService(sessionRepo, cartRepo)
	app.UserService = service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, productCache, app.Logger)
	app.ProductService = productService
	app.CartService = service.NewCartService(cartRepo, productService, app.CartLocks)
	app.CheckoutService = service.NewCheckoutService(cartRepo, orderRepo, app.OrderProducer, app.CartLocks, app.Logger)
	app.OrderService = service.NewOrderService(orderRepo)

	log.Printf("Finish setup services")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing order producer...")
			if err := app.OrderProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("order producer shutdown error: %v", err)
			}
		}

		if app.RedisConn != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisConn.Close(); err != nil {
				log.Printf("redis shutdown error: %v", err)
			}
		}

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
