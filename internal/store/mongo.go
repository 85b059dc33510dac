package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eystudio/caloriediet-backend/internal/database"
	"github.com/eystudio/caloriediet-backend/internal/models"
)

// NewMongo wires every store onto one Mongo database.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Users:     &mongoUsers{col: db.Collection(database.ColUsers)},
		Sessions:  &mongoSessions{col: db.Collection(database.ColSessions)},
		Meals:     &mongoMeals{col: db.Collection(database.ColMeals)},
		Water:     &mongoWater{col: db.Collection(database.ColWater)},
		Steps:     &mongoSteps{col: db.Collection(database.ColSteps)},
		Vitamins:  &mongoVitamins{col: db.Collection(database.ColVitamins)},
		Weights:   &mongoWeights{col: db.Collection(database.ColWeightLogs)},
		Diets:     &mongoDiets{personal: db.Collection(database.ColPersonalDiets), active: db.Collection(database.ColActiveDiets)},
		Deletions: &mongoDeletions{col: db.Collection(database.ColDeletionRequests)},
	}
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

type mongoUsers struct {
	col *mongo.Collection
}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	_, err := s.col.InsertOne(ctx, u)
	return err
}

func (s *mongoUsers) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	u.Normalize()
	return &u, nil
}

func (s *mongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	u.Normalize()
	return &u, nil
}

func (s *mongoUsers) Update(ctx context.Context, userID string, fields map[string]any) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) Unset(ctx context.Context, userID string, fields ...string) error {
	unset := bson.M{}
	for _, f := range fields {
		unset[f] = ""
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$unset": unset})
	return err
}

func (s *mongoUsers) Delete(ctx context.Context, userID string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

func (s *mongoUsers) ListScheduled(ctx context.Context) ([]*models.User, error) {
	cur, err := s.col.Find(ctx, bson.M{"scheduled_deletion_at": bson.M{"$exists": true, "$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		u.Normalize()
		users = append(users, &u)
	}
	return users, cur.Err()
}

type mongoSessions struct {
	col *mongo.Collection
}

func (s *mongoSessions) Insert(ctx context.Context, sess *models.Session) error {
	_, err := s.col.InsertOne(ctx, sess)
	return err
}

func (s *mongoSessions) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	if err := s.col.FindOne(ctx, bson.M{"session_token": token}).Decode(&sess); err != nil {
		return nil, mapMongoErr(err)
	}
	return &sess, nil
}

func (s *mongoSessions) Delete(ctx context.Context, token string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"session_token": token})
	return err
}

func (s *mongoSessions) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

func (s *mongoSessions) HasLive(ctx context.Context, userID string, now time.Time) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"user_id": userID, "expires_at": bson.M{"$gt": now}})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type mongoMeals struct {
	col *mongo.Collection
}

func (s *mongoMeals) Insert(ctx context.Context, m *models.Meal) error {
	_, err := s.col.InsertOne(ctx, m)
	return err
}

func (s *mongoMeals) ListByDay(ctx context.Context, userID, date string) ([]*models.Meal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID, "date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var meals []*models.Meal
	if err := cur.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (s *mongoMeals) Delete(ctx context.Context, userID, mealID string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID, "meal_id": mealID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoMeals) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

type mongoWater struct {
	col *mongo.Collection
}

func (s *mongoWater) Insert(ctx context.Context, e *models.WaterEntry) error {
	_, err := s.col.InsertOne(ctx, e)
	return err
}

func (s *mongoWater) ListByDay(ctx context.Context, userID, date string) ([]*models.WaterEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID, "date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var entries []*models.WaterEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *mongoWater) ListRange(ctx context.Context, userID, fromDate, toDate string) ([]*models.WaterEntry, error) {
	cur, err := s.col.Find(ctx, bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": fromDate, "$lte": toDate},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var entries []*models.WaterEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *mongoWater) Delete(ctx context.Context, userID, entryID string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID, "entry_id": entryID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoWater) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

type mongoSteps struct {
	col *mongo.Collection
}

func (s *mongoSteps) Get(ctx context.Context, userID, date string) (*models.StepsDaily, error) {
	var rec models.StepsDaily
	if err := s.col.FindOne(ctx, bson.M{"user_id": userID, "date": date}).Decode(&rec); err != nil {
		return nil, mapMongoErr(err)
	}
	return &rec, nil
}

func (s *mongoSteps) Upsert(ctx context.Context, rec *models.StepsDaily) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"user_id": rec.UserID, "date": rec.Date}, rec, opts)
	return err
}

func (s *mongoSteps) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

type mongoVitamins struct {
	col *mongo.Collection
}

func (s *mongoVitamins) Insert(ctx context.Context, v *models.Vitamin) error {
	_, err := s.col.InsertOne(ctx, v)
	return err
}

func (s *mongoVitamins) ListByUser(ctx context.Context, userID string) ([]*models.Vitamin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var vitamins []*models.Vitamin
	if err := cur.All(ctx, &vitamins); err != nil {
		return nil, err
	}
	return vitamins, nil
}

func (s *mongoVitamins) Get(ctx context.Context, userID, vitaminID string) (*models.Vitamin, error) {
	var v models.Vitamin
	if err := s.col.FindOne(ctx, bson.M{"user_id": userID, "vitamin_id": vitaminID}).Decode(&v); err != nil {
		return nil, mapMongoErr(err)
	}
	return &v, nil
}

func (s *mongoVitamins) Update(ctx context.Context, userID, vitaminID string, fields map[string]any) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"user_id": userID, "vitamin_id": vitaminID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoVitamins) Delete(ctx context.Context, userID, vitaminID string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID, "vitamin_id": vitaminID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoVitamins) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

type mongoWeights struct {
	col *mongo.Collection
}

func (s *mongoWeights) Upsert(ctx context.Context, e *models.WeightEntry) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"user_id": e.UserID, "date": e.Date}, e, opts)
	return err
}

func (s *mongoWeights) ListByUser(ctx context.Context, userID string, limit int) ([]*models.WeightEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var entries []*models.WeightEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *mongoWeights) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

type mongoDiets struct {
	personal *mongo.Collection
	active   *mongo.Collection
}

func (s *mongoDiets) InsertPersonal(ctx context.Context, d *models.PersonalDiet) error {
	_, err := s.personal.InsertOne(ctx, d)
	return err
}

func (s *mongoDiets) ListPersonalByUser(ctx context.Context, userID string) ([]*models.PersonalDiet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.personal.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var diets []*models.PersonalDiet
	if err := cur.All(ctx, &diets); err != nil {
		return nil, err
	}
	return diets, nil
}

func (s *mongoDiets) GetPersonal(ctx context.Context, userID, dietID string) (*models.PersonalDiet, error) {
	var d models.PersonalDiet
	if err := s.personal.FindOne(ctx, bson.M{"user_id": userID, "diet_id": dietID}).Decode(&d); err != nil {
		return nil, mapMongoErr(err)
	}
	return &d, nil
}

func (s *mongoDiets) SetActive(ctx context.Context, a *models.ActiveDiet) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.active.ReplaceOne(ctx, bson.M{"user_id": a.UserID}, a, opts)
	return err
}

func (s *mongoDiets) GetActive(ctx context.Context, userID string) (*models.ActiveDiet, error) {
	var a models.ActiveDiet
	if err := s.active.FindOne(ctx, bson.M{"user_id": userID}).Decode(&a); err != nil {
		return nil, mapMongoErr(err)
	}
	return &a, nil
}

func (s *mongoDiets) UpdateActive(ctx context.Context, userID string, fields map[string]any) error {
	res, err := s.active.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoDiets) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := s.personal.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return err
	}
	_, err := s.active.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

type mongoDeletions struct {
	col *mongo.Collection
}

func (s *mongoDeletions) Insert(ctx context.Context, r *models.DeletionRequest) error {
	_, err := s.col.InsertOne(ctx, r)
	return err
}
