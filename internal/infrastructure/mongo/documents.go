package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateDocument は MongoDB 上でのテンプレートスキーマを Go 構造体として表現したもの。
// questions はユーザー定義の設問スキーマであり、意図的に型を付けない。
type TemplateDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	OwnerID        primitive.ObjectID `bson:"ownerId"`
	OwnerName      string             `bson:"ownerName,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description,omitempty"`
	Topic          string             `bson:"topic,omitempty"`
	Public         bool               `bson:"public"`
	AllowedUserIDs []string           `bson:"allowedUserIds,omitempty"`
	Tags           []string           `bson:"tags,omitempty"`
	Questions      interface{}        `bson:"questions,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// SubmissionDocument は 1 件の回答レコード。answers は設問インデックスをキーに
// 持つ緩いマップで、こちらも型を付けずに保持する。
type SubmissionDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	TemplateID  primitive.ObjectID `bson:"templateId"`
	SubmitterID primitive.ObjectID `bson:"userId,omitempty"`
	Answers     interface{}        `bson:"answers,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// CommentDocument はテンプレートに対する自由記述コメント。
type CommentDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	TemplateID primitive.ObjectID `bson:"templateId"`
	AuthorID   primitive.ObjectID `bson:"authorId,omitempty"`
	AuthorName string             `bson:"authorName,omitempty"`
	Text       string             `bson:"text"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// UserDocument は認証・API トークン照合に使うユーザーレコード。
type UserDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name,omitempty"`
	Email     string             `bson:"email,omitempty"`
	Role      string             `bson:"role,omitempty"`
	APIToken  string             `bson:"apiToken,omitempty"`
	Blocked   bool               `bson:"blocked,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}
