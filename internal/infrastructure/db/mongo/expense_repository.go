package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// topSpendersLimit caps the top spending users list of the analytics summary.
const topSpendersLimit = 5

type ExpenseRepository struct {
	col *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{col: db.Collection(collectionExpenses)}
}

type mongoExpense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Amount      float64            `bson:"amount"`
	CategoryID  primitive.ObjectID `bson:"categoryId"`
	Description string             `bson:"description"`
	PaymentType string             `bson:"paymentType"`
	Type        string             `bson:"type"`
	Date        time.Time          `bson:"date"`
	IsDeleted   bool               `bson:"isDeleted"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (me *mongoExpense) toDomain() *domain.Expense {
	typ := domain.TransactionType(me.Type)
	if typ == "" {
		typ = domain.TypeExpense
	}
	return &domain.Expense{
		ID:          me.ID.Hex(),
		UserID:      hexOrEmpty(me.UserID),
		Amount:      me.Amount,
		CategoryID:  hexOrEmpty(me.CategoryID),
		Description: me.Description,
		PaymentType: me.PaymentType,
		Type:        typ,
		Date:        me.Date.UTC(),
		IsDeleted:   me.IsDeleted,
		CreatedAt:   me.CreatedAt.UTC(),
		UpdatedAt:   me.UpdatedAt.UTC(),
	}
}

// expenseDetailDoc is the shape produced by the detailed listing pipeline.
type expenseDetailDoc struct {
	mongoExpense `bson:",inline"`
	User         *struct {
		ID    primitive.ObjectID `bson:"_id"`
		Name  string             `bson:"name"`
		Email string             `bson:"email"`
	} `bson:"user,omitempty"`
	Category *struct {
		Name string `bson:"name"`
	} `bson:"category,omitempty"`
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	doc, err := toMongoExpense(e)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert expense: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*domain.Expense, error) {
	oid, err := parseID(id, domain.ErrExpenseNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoExpense
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return me.toDomain(), nil
}

// ListByUser returns the user's non-deleted transactions, newest first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Expense{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx,
		bson.M{"userId": oid, "isDeleted": false},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoExpense
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	out := make([]*domain.Expense, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// ListDetailed resolves owner and category with $lookup. References that no
// longer resolve are left empty.
func (r *ExpenseRepository) ListDetailed(ctx context.Context, filter ports.ExpenseFilter) ([]domain.ExpenseDetail, error) {
	match, err := detailMatch(filter)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		lookupStage(collectionUsers, "userId", "user"),
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		lookupStage(collectionCategories, "categoryId", "category"),
		{{Key: "$unwind", Value: bson.M{"path": "$category", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"user.password": 0, "user.refreshToken": 0}}},
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []expenseDetailDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	out := make([]domain.ExpenseDetail, 0, len(docs))
	for i := range docs {
		d := domain.ExpenseDetail{Expense: *docs[i].toDomain()}
		if u := docs[i].User; u != nil {
			d.User = &domain.UserSummary{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
		}
		if c := docs[i].Category; c != nil {
			d.Category = c.Name
		}
		out = append(out, d)
	}
	return out, nil
}

// Update persists every editable field of e.
func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	doc, err := toMongoExpense(e)
	if err != nil {
		return err
	}
	oid, err := parseID(e.ID, domain.ErrExpenseNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"amount":      doc.Amount,
		"categoryId":  doc.CategoryID,
		"description": doc.Description,
		"paymentType": doc.PaymentType,
		"type":        doc.Type,
		"date":        doc.Date,
		"updatedAt":   doc.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) MarkDeleted(ctx context.Context, id string) error {
	oid, err := parseID(id, domain.ErrExpenseNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"isDeleted": true,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Analytics runs the four dashboard aggregations over non-deleted
// transactions.
func (r *ExpenseRepository) Analytics(ctx context.Context) (*domain.Analytics, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	notDeleted := bson.D{{Key: "$match", Value: bson.M{"isDeleted": false}}}

	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := r.aggregate(ctx, &totals, mongo.Pipeline{
		notDeleted,
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}); err != nil {
		return nil, fmt.Errorf("total expenses: %w", err)
	}

	a := &domain.Analytics{}
	if len(totals) > 0 {
		a.TotalExpenses = totals[0].Total
	}

	if err := r.aggregate(ctx, &a.CategoryWiseTotals, mongo.Pipeline{
		notDeleted,
		lookupStage(collectionCategories, "categoryId", "category"),
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category.name",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}); err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}

	if err := r.aggregate(ctx, &a.MonthlySpendingTrends, mongo.Pipeline{
		notDeleted,
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$date"},
				"month": bson.M{"$month": "$date"},
			},
			"total": bson.M{"$sum": "$amount"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	}); err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}

	if err := r.aggregate(ctx, &a.TopSpendingUsers, mongo.Pipeline{
		notDeleted,
		lookupStage(collectionUsers, "userId", "user"),
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$user.email",
			"name":       bson.M{"$first": "$user.name"},
			"totalSpent": bson.M{"$sum": "$amount"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalSpent", Value: -1}}}},
		{{Key: "$limit", Value: topSpendersLimit}},
	}); err != nil {
		return nil, fmt.Errorf("top spenders: %w", err)
	}

	return a, nil
}

// EnsureIndexes creates the lookup indexes for owner listings and exports.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isDeleted", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("expenses indexes: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) aggregate(ctx context.Context, out any, pipeline mongo.Pipeline) error {
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func toMongoExpense(e *domain.Expense) (*mongoExpense, error) {
	userID, err := primitive.ObjectIDFromHex(e.UserID)
	if err != nil {
		return nil, fmt.Errorf("expense user id %q: %w", e.UserID, err)
	}
	categoryID, err := primitive.ObjectIDFromHex(e.CategoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	return &mongoExpense{
		UserID:      userID,
		Amount:      e.Amount,
		CategoryID:  categoryID,
		Description: e.Description,
		PaymentType: e.PaymentType,
		Type:        string(e.Type),
		Date:        e.Date,
		IsDeleted:   e.IsDeleted,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}, nil
}

func detailMatch(f ports.ExpenseFilter) (bson.M, error) {
	match := bson.M{"isDeleted": false}
	if f.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(f.UserID)
		if err != nil {
			return nil, domain.Validation("invalid userId")
		}
		match["userId"] = oid
	}
	if f.CategoryID != "" {
		oid, err := primitive.ObjectIDFromHex(f.CategoryID)
		if err != nil {
			return nil, domain.Validation("invalid categoryId")
		}
		match["categoryId"] = oid
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		date := bson.M{}
		if !f.From.IsZero() {
			date["$gte"] = f.From
		}
		if !f.To.IsZero() {
			date["$lte"] = f.To
		}
		match["date"] = date
	}
	return match, nil
}

func lookupStage(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": "_id",
		"as":           as,
	}}}
}
