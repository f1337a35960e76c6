package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// APIUser は API トークンから解決した外部コンシューマの身元。
type APIUser struct {
	ID   string
	Name string
	Role string
}

// UserRepository はユーザーレコードの照合を MongoDB で担う実装リポジトリ。
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository はユーザーコレクションを束縛したリポジトリを構築する。
func NewUserRepository(db *mongo.Database, userCollection string) *UserRepository {
	return &UserRepository{users: db.Collection(userCollection)}
}

// FindByAPIToken はトークン文字列からブロックされていないユーザーを解決する。
// 該当なしは mongo.ErrNoDocuments のまま呼び出し側へ返す。
func (r *UserRepository) FindByAPIToken(ctx context.Context, token string) (*APIUser, error) {
	token = strings.TrimSpace(token)

	var doc UserDocument
	err := r.users.FindOne(ctx, bson.M{"apiToken": token, "blocked": bson.M{"$ne": true}}).Decode(&doc)
	if err != nil {
		return nil, err
	}

	return &APIUser{
		ID:   doc.ID.Hex(),
		Name: doc.Name,
		Role: doc.Role,
	}, nil
}
