package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/earlysignal/earlysignal/core"
)

const studentsCollection = "students"

// DB wraps the Mongo client and the database handle the repositories share.
type DB struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

func Open(conf *core.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Mongo.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "pinging mongo")
	}

	return &DB{
		client:  client,
		db:      client.Database(conf.Mongo.Database),
		timeout: conf.Mongo.Timeout,
	}, nil
}

func (db *DB) Close() error {
	ctx, cancel := db.ctx()
	defer cancel()
	return db.client.Disconnect(ctx)
}

func (db *DB) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), db.timeout)
}
