package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	analyticsdomain "github.com/formbase/formbase-services/api/internal/analytics/domain"
	"github.com/formbase/formbase-services/api/internal/search/domain"
)

// SearchRepository は横断検索の候補プール読み取りを MongoDB で担う実装リポジトリ。
// 可視性の絞り込み (public テンプレートのみ) はクエリ段階でここが保証する。
type SearchRepository struct {
	templates *mongo.Collection
	comments  *mongo.Collection
}

// NewSearchRepository はテンプレート・コメントのコレクションを束縛したリポジトリを構築する。
func NewSearchRepository(db *mongo.Database, templateCollection, commentCollection string) *SearchRepository {
	return &SearchRepository{
		templates: db.Collection(templateCollection),
		comments:  db.Collection(commentCollection),
	}
}

// PublicTemplates は公開テンプレートの検索候補を返す。
func (r *SearchRepository) PublicTemplates(ctx context.Context) ([]domain.TemplateCandidate, error) {
	docs, err := r.loadPublicTemplates(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.TemplateCandidate, 0, len(docs))
	for _, doc := range docs {
		candidates = append(candidates, domain.TemplateCandidate{
			ID:          doc.ID.Hex(),
			Title:       doc.Title,
			Description: doc.Description,
			AuthorName:  doc.OwnerName,
		})
	}
	return candidates, nil
}

// PublicQuestions は公開テンプレートの設問スキーマを解決し、ラベルを持つ設問
// だけを検索候補として返す。
func (r *SearchRepository) PublicQuestions(ctx context.Context) ([]domain.QuestionCandidate, error) {
	docs, err := r.loadPublicTemplates(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.QuestionCandidate, 0)
	for _, doc := range docs {
		for _, question := range analyticsdomain.ResolveSchema(plainValue(doc.Questions)) {
			if question.Label == "" {
				continue
			}
			candidates = append(candidates, domain.QuestionCandidate{
				TemplateID:    doc.ID.Hex(),
				Index:         question.Index,
				Label:         question.Label,
				TemplateTitle: doc.Title,
				AuthorName:    doc.OwnerName,
			})
		}
	}
	return candidates, nil
}

// PublicComments は公開テンプレートに紐づくコメントを検索候補として返す。
func (r *SearchRepository) PublicComments(ctx context.Context) ([]domain.CommentCandidate, error) {
	docs, err := r.loadPublicTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return []domain.CommentCandidate{}, nil
	}

	templateIDs := make([]primitive.ObjectID, 0, len(docs))
	titles := make(map[primitive.ObjectID]string, len(docs))
	for _, doc := range docs {
		templateIDs = append(templateIDs, doc.ID)
		titles[doc.ID] = doc.Title
	}

	cursor, err := r.comments.Find(ctx, bson.M{"templateId": bson.M{"$in": templateIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	candidates := make([]domain.CommentCandidate, 0)
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		candidates = append(candidates, domain.CommentCandidate{
			ID:            doc.ID.Hex(),
			TemplateID:    doc.TemplateID.Hex(),
			Text:          doc.Text,
			TemplateTitle: titles[doc.TemplateID],
			AuthorName:    doc.AuthorName,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

// PublicTagCounts は公開テンプレートのタグ頻度を集計パイプラインで数える。
func (r *SearchRepository) PublicTagCounts(ctx context.Context) ([]domain.TagCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"public": true}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.templates.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make([]domain.TagCount, 0)
	for cursor.Next(ctx) {
		var row struct {
			Tag   string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts = append(counts, domain.TagCount{Tag: row.Tag, Count: row.Count})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *SearchRepository) loadPublicTemplates(ctx context.Context) ([]TemplateDocument, error) {
	cursor, err := r.templates.Find(ctx, bson.M{"public": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]TemplateDocument, 0)
	for cursor.Next(ctx) {
		var doc TemplateDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
