package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shop-reconciliation/internal/domain"
)

// MongoShopRepository serves shop metadata and authority transactions from the
// shops and reports collections.
type MongoShopRepository struct {
	shops   *mongo.Collection
	reports *mongo.Collection
}

// NewMongoShopRepository creates a repository over the given database.
func NewMongoShopRepository(db *mongo.Database) *MongoShopRepository {
	return &MongoShopRepository{
		shops:   db.Collection("shops"),
		reports: db.Collection("reports"),
	}
}

type shopDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	NsCIN       string             `bson:"ns_cin"`
	ShopDetails struct {
		ShopName string `bson:"shop_name"`
	} `bson:"shop_details"`
}

var shopProjection = bson.M{"shop_details.shop_name": 1, "ns_cin": 1}

// ListShops returns picker options for every shop with ARMS integration enabled.
func (r *MongoShopRepository) ListShops(ctx context.Context) ([]domain.ShopOption, error) {
	cur, err := r.shops.Find(ctx,
		bson.M{"enable_arms_integration": 1},
		options.Find().SetProjection(shopProjection))
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}

	var docs []shopDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode shops: %w", err)
	}

	opts := make([]domain.ShopOption, 0, len(docs))
	for _, d := range docs {
		opts = append(opts, domain.ShopOption{
			ID:    d.ID.Hex(),
			Label: fmt.Sprintf("%s - %s", d.ShopDetails.ShopName, d.NsCIN),
		})
	}
	return opts, nil
}

// GetShop resolves one shop's display name and tax id. A malformed or unknown
// id maps to domain.ErrShopNotFound.
func (r *MongoShopRepository) GetShop(ctx context.Context, shopID string) (domain.ShopMeta, error) {
	oid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return domain.ShopMeta{}, domain.ErrShopNotFound
	}

	var doc shopDoc
	err = r.shops.FindOne(ctx,
		bson.M{"_id": oid},
		options.FindOne().SetProjection(shopProjection)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ShopMeta{}, domain.ErrShopNotFound
	}
	if err != nil {
		return domain.ShopMeta{}, fmt.Errorf("find shop %s: %w", shopID, err)
	}

	return domain.ShopMeta{Name: doc.ShopDetails.ShopName, TaxID: doc.NsCIN}, nil
}

type reportDoc struct {
	Date          string  `bson:"date"`
	OrderID       string  `bson:"order_id"`
	Amount        float64 `bson:"amount"`
	TLTaxAmount   float64 `bson:"tl_tax_amount"`
	TaxableAmount float64 `bson:"taxable_amount"`
}

// GetAuthorityRows queries the reports collection for the shop and the
// dd-mm-yyyy formatted range bounds. The collection stores dates as strings
// and owns the range filter; no re-filtering happens on this side.
func (r *MongoShopRepository) GetAuthorityRows(ctx context.Context, shopID string, rng domain.DateRange) ([]domain.AuthorityRow, error) {
	from, to := rng.FormattedBounds()
	filter := bson.M{
		"store_id": shopID,
		"date":     bson.M{"$gte": from, "$lte": to},
	}
	projection := bson.M{
		"date":           1,
		"order_id":       1,
		"amount":         1,
		"tl_tax_amount":  1,
		"taxable_amount": 1,
	}

	cur, err := r.reports.Find(ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("query reports for shop %s: %w", shopID, err)
	}

	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	rows := make([]domain.AuthorityRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, domain.AuthorityRow{
			Date:          d.Date,
			OrderID:       d.OrderID,
			Amount:        decimal.NewFromFloat(d.Amount),
			TLTaxAmount:   decimal.NewFromFloat(d.TLTaxAmount),
			TaxableAmount: decimal.NewFromFloat(d.TaxableAmount),
		})
	}
	return rows, nil
}
