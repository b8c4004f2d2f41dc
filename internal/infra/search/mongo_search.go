package search

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"shop/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "products"

// 検索用ドキュメント（_idは返さない）
type productDocument struct {
	ProductID  int64  `bson:"product_id"`
	Name       string `bson:"name"`
	Price      int64  `bson:"price"`
	CategoryID int64  `bson:"category_id"`
}

// MongoDBの商品コレクションで名前検索する
type MongoProductSearch struct {
	col *mongo.Collection
}

// DI
func NewMongoProductSearch(db *mongo.Database) *MongoProductSearch {
	return &MongoProductSearch{col: db.Collection(collectionName)}
}

// Connectは接続してpingまで確認する
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("search: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("search: mongo ping: %w", err)
	}
	return client, nil
}

// product_idのunique index
func (s *MongoProductSearch) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("search: ensure index: %w", err)
	}
	return nil
}

// product_idでupsert
func (s *MongoProductSearch) Index(ctx context.Context, p model.Product) error {
	_, err := s.col.ReplaceOne(ctx,
		bson.M{"product_id": p.ID},
		toDocument(p),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("search: index product %d: %w", p.ID, err)
	}
	return nil
}

// 大文字小文字を区別しない部分一致
func (s *MongoProductSearch) Search(ctx context.Context, query string) ([]model.Product, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "product_id", Value: 1}})

	cur, err := s.col.Find(ctx, nameFilter(query), opts)
	if err != nil {
		return nil, fmt.Errorf("search: find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("search: decode: %w", err)
	}

	out := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toProduct())
	}
	return out, nil
}

// コレクションを作り直す
func (s *MongoProductSearch) Rebuild(ctx context.Context, products []model.Product) error {
	if _, err := s.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("search: clear: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"product_id": p.ID}).
			SetReplacement(toDocument(p)).
			SetUpsert(true))
	}

	if _, err := s.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("search: bulk write: %w", err)
	}
	return nil
}

// 入力は正規表現としてではなく文字列として扱う
func nameFilter(query string) bson.M {
	return bson.M{
		"name": bson.M{
			"$regex":   namePattern(query),
			"$options": "i",
		},
	}
}

func namePattern(query string) string {
	return regexp.QuoteMeta(query)
}

func toDocument(p model.Product) productDocument {
	return productDocument{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
	}
}

func (d productDocument) toProduct() model.Product {
	return model.Product{
		ID:         d.ProductID,
		Name:       d.Name,
		Price:      d.Price,
		CategoryID: d.CategoryID,
	}
}
