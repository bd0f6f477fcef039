package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localbites/localbites-services/api/internal/config"
	"github.com/localbites/localbites-services/api/internal/server"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.Logger.WithError(err).Fatal("failed to connect to MongoDB")
	}

	app := server.New(cfg, client)
	if err := app.Run(); err != nil {
		cfg.Logger.WithError(err).Fatal("server failed to start")
	}
}
