package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formbase/formbase-services/api/internal/analytics/domain"
)

// TemplateRepository は分析コンテキストのテンプレート読み取りを MongoDB で担う実装リポジトリ。
type TemplateRepository struct {
	templates *mongo.Collection
}

// NewTemplateRepository はテンプレートコレクションを束縛したリポジトリを構築する。
func NewTemplateRepository(db *mongo.Database, templateCollection string) *TemplateRepository {
	return &TemplateRepository{templates: db.Collection(templateCollection)}
}

// FindByID はテンプレート ID から単一テンプレートを取得し、設問スキーマを解決して返す。
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*domain.Template, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	var doc TemplateDocument
	if err := r.templates.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}

	template := mapTemplateDocument(doc)
	return &template, nil
}

// ListPublicByOwner は指定オーナーの公開テンプレートを作成日時の降順で返す。
func (r *TemplateRepository) ListPublicByOwner(ctx context.Context, ownerID string) ([]domain.Template, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(ownerID))
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.templates.Find(ctx, bson.M{"ownerId": objectID, "public": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := make([]domain.Template, 0)
	for cursor.Next(ctx) {
		var doc TemplateDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		templates = append(templates, mapTemplateDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// mapTemplateDocument はドキュメントをドメインモデルへ変換する。設問スキーマの
// 解決はここで一度だけ行い、以降のコードは型付きの Question だけを扱う。
func mapTemplateDocument(doc TemplateDocument) domain.Template {
	return domain.Template{
		ID:             doc.ID.Hex(),
		OwnerID:        hexOrEmpty(doc.OwnerID),
		OwnerName:      doc.OwnerName,
		Title:          doc.Title,
		Description:    doc.Description,
		Topic:          doc.Topic,
		Public:         doc.Public,
		AllowedUserIDs: doc.AllowedUserIDs,
		Tags:           doc.Tags,
		Questions:      domain.ResolveSchema(plainValue(doc.Questions)),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
