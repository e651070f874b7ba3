package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// connectTimeout bounds the initial handshake; per-call operations use
// whatever deadline the caller's context carries.
const connectTimeout = 10 * time.Second

// MongoClient is the production Client, connecting to the supplied URI
// and binding to the given database.
type MongoClient struct {
	client		*mongo.Client
	database	string
}

// NewMongoClient connects to uri and binds to database.
func NewMongoClient(ctx context.Context, uri, database string) (*MongoClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, err
	}
	return &MongoClient{client: client, database: database}, nil
}

func (m *MongoClient) coll(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

func projectionDoc(fields []string) bson.M {
	p := bson.M{}
	for _, f := range fields {
		p[f] = 1
	}
	return p
}

func (m *MongoClient) FindOne(ctx context.Context, collection string, filter Document, projection []string) (Document, bool, error) {
	opts := options.FindOne()
	if len(projection) > 0 {
		opts.SetProjection(projectionDoc(projection))
	}

	var raw bson.M
	err := m.coll(collection).FindOne(ctx, bson.M(filter), opts).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return Document(raw), true, nil
}

func (m *MongoClient) FindMany(ctx context.Context, collection string, filter Document, projection []string, opts FindOptions) ([]Document, error) {
	findOpts := options.Find()
	if len(projection) > 0 {
		findOpts.SetProjection(projectionDoc(projection))
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.SortField != "" {
		dir := -1
		if opts.SortAscending {
			dir = 1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortField, Value: dir}})
	}

	cur, err := m.coll(collection).Find(ctx, bson.M(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		docs = append(docs, Document(raw))
	}
	return docs, cur.Err()
}

func (m *MongoClient) InsertOne(ctx context.Context, collection string, doc Document) (any, error) {
	res, err := m.coll(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

func (m *MongoClient) UpdateOne(ctx context.Context, collection string, filter Document, update Update) error {
	set := bson.M{}
	for k, v := range update.Set {
		set[k] = v
	}
	body := bson.M{}
	if len(set) > 0 {
		body["$set"] = set
	}
	if len(update.Unset) > 0 {
		unset := bson.M{}
		for _, k := range update.Unset {
			unset[k] = ""
		}
		body["$unset"] = unset
	}
	if len(body) == 0 {
		return nil
	}
	_, err := m.coll(collection).UpdateOne(ctx, bson.M(filter), body)
	return err
}

func (m *MongoClient) DeleteOne(ctx context.Context, collection string, filter Document) error {
	_, err := m.coll(collection).DeleteOne(ctx, bson.M(filter))
	return err
}

func (m *MongoClient) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

var _ Client = (*MongoClient)(nil)
