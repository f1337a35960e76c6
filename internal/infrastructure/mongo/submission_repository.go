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

// SubmissionRepository は回答レコードの読み取りを MongoDB で担う実装リポジトリ。
type SubmissionRepository struct {
	submissions *mongo.Collection
}

// NewSubmissionRepository は回答コレクションを束縛したリポジトリを構築する。
func NewSubmissionRepository(db *mongo.Database, submissionCollection string) *SubmissionRepository {
	return &SubmissionRepository{submissions: db.Collection(submissionCollection)}
}

// ListByTemplate はテンプレートに紐づく全回答を提出日時の昇順で返す。
// answers はプレーン値化するだけで、正規化はドメイン側の責務に残す。
func (r *SubmissionRepository) ListByTemplate(ctx context.Context, templateID string) ([]domain.Submission, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(templateID))
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.submissions.Find(ctx, bson.M{"templateId": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		submissions = append(submissions, domain.Submission{
			ID:          doc.ID.Hex(),
			TemplateID:  doc.TemplateID.Hex(),
			SubmitterID: hexOrEmpty(doc.SubmitterID),
			Answers:     plainValue(doc.Answers),
			CreatedAt:   doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}
