package handlers

import (
	"campus-connect/app/server/config"
	"campus-connect/app/server/identity"
	"campus-connect/app/server/jwt"
	"campus-connect/app/server/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l        *zap.Logger
	db       *gorm.DB        // relational store: users, lost items, donors
	mdb      *mongo.Database // document store: societies, events, marketplace, feedback
	rdb      *redis.Client
	jwt      *jwt.JWT
	verifier identity.Verifier
	cfg      *config.Config
}

func NewApp(l *zap.Logger, db *gorm.DB, mdb *mongo.Database, rdb *redis.Client, j *jwt.JWT, verifier identity.Verifier, cfg *config.Config) *App {
	return &App{
		l:        l,
		db:       db,
		mdb:      mdb,
		rdb:      rdb,
		jwt:      j,
		verifier: verifier,
		cfg:      cfg,
	}
}

func (a *App) societies() *mongo.Collection {
	return a.mdb.Collection(models.SocietyCollection)
}

func (a *App) events() *mongo.Collection {
	return a.mdb.Collection(models.EventCollection)
}

func (a *App) marketplace() *mongo.Collection {
	return a.mdb.Collection(models.MarketplaceCollection)
}

func (a *App) feedback() *mongo.Collection {
	return a.mdb.Collection(models.FeedbackCollection)
}
