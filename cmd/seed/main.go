package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	userCount       int
	templateCount   int
	submissionCount int
	commentCount    int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	users       string
	templates   string
	submissions string
	comments    string
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role,omitempty"`
	APIToken  string             `bson:"apiToken"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type templateDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	OwnerID     primitive.ObjectID `bson:"ownerId"`
	OwnerName   string             `bson:"ownerName"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Topic       string             `bson:"topic,omitempty"`
	Public      bool               `bson:"public"`
	Tags        []string           `bson:"tags,omitempty"`
	Questions   interface{}        `bson:"questions,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type submissionDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	TemplateID primitive.ObjectID `bson:"templateId"`
	UserID     primitive.ObjectID `bson:"userId"`
	Answers    interface{}        `bson:"answers,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type commentDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	TemplateID primitive.ObjectID `bson:"templateId"`
	AuthorID   primitive.ObjectID `bson:"authorId"`
	AuthorName string             `bson:"authorName"`
	Text       string             `bson:"text"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// questionSchemas はシードに使う設問スキーマのバリエーション。最後のひとつは
// あえて壊れたスキーマで、集計側のフォールバックを確認する用途。
var questionSchemas = []interface{}{
	[]interface{}{
		map[string]interface{}{"type": "text", "title": "What is your favorite feature?", "required": true},
		map[string]interface{}{"type": "rating", "title": "How satisfied are you overall?", "required": true},
		map[string]interface{}{"type": "checkbox", "title": "Which platforms do you use?"},
	},
	[]interface{}{
		map[string]interface{}{"type": "integer", "title": "How many times per week do you use the product?"},
		map[string]interface{}{"type": "radio", "title": "Would you recommend us?", "required": true},
		map[string]interface{}{"type": "textarea", "title": "Anything else you would like to share?"},
	},
	[]interface{}{
		map[string]interface{}{"type": "select", "title": "Which plan are you on?"},
		map[string]interface{}{"type": "linear", "title": "How easy was onboarding?"},
	},
	"not a question list at all",
}

var sampleTags = []string{"feedback", "survey", "product", "onboarding", "quiz", "education"}

var textAnswers = []string{
	"The search feature",
	"the search feature",
	"Dark mode",
	"Keyboard shortcuts",
	"",
}

var platformOptions = []string{"Web", "iOS", "Android", "Desktop"}

func main() {
	opts := parseFlags()

	cfg := collections{
		users:       envOrDefault("USER_COLLECTION", "users"),
		templates:   envOrDefault("TEMPLATE_COLLECTION", "templates"),
		submissions: firstNonEmpty(os.Getenv("SUBMISSION_COLLECTION"), os.Getenv("FORM_COLLECTION"), "forms"),
		comments:    envOrDefault("COMMENT_COLLECTION", "comments"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "formbase")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		if err := dropCollections(ctx, db, cfg); err != nil {
			log.Fatalf("コレクション削除に失敗しました: %v", err)
		}
		log.Printf("既存コレクションを削除しました")
	}

	if err := ensureIndexes(ctx, db, cfg); err != nil {
		log.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	users := generateUsers(rng, opts.userCount)
	if err := insertMany(ctx, db.Collection(cfg.users), toAnySlice(users)); err != nil {
		log.Fatalf("ユーザーデータの挿入に失敗しました: %v", err)
	}

	templates := generateTemplates(rng, users, opts.templateCount)
	if err := insertMany(ctx, db.Collection(cfg.templates), toAnySlice(templates)); err != nil {
		log.Fatalf("テンプレートデータの挿入に失敗しました: %v", err)
	}

	submissions := generateSubmissions(rng, templates, users, opts.submissionCount)
	if err := insertMany(ctx, db.Collection(cfg.submissions), toAnySlice(submissions)); err != nil {
		log.Fatalf("回答データの挿入に失敗しました: %v", err)
	}

	comments := generateComments(rng, templates, users, opts.commentCount)
	if err := insertMany(ctx, db.Collection(cfg.comments), toAnySlice(comments)); err != nil {
		log.Fatalf("コメントデータの挿入に失敗しました: %v", err)
	}

	log.Printf("シード完了: users=%d templates=%d submissions=%d comments=%d",
		len(users), len(templates), len(submissions), len(comments))
	for _, user := range users {
		log.Printf("api token (%s): %s", user.Name, user.APIToken)
	}
}

func parseFlags() seedOptions {
	opts := seedOptions{}
	flag.IntVar(&opts.userCount, "users", 3, "number of users to seed")
	flag.IntVar(&opts.templateCount, "templates", 8, "number of templates to seed")
	flag.IntVar(&opts.submissionCount, "submissions", 120, "number of submissions to seed")
	flag.IntVar(&opts.commentCount, "comments", 20, "number of comments to seed")
	flag.BoolVar(&opts.dropCollections, "drop", false, "drop collections before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()
	return opts
}

func generateUsers(rng *rand.Rand, count int) []userDocument {
	users := make([]userDocument, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		role := ""
		if i == 0 {
			role = "admin"
		}
		users = append(users, userDocument{
			ID:        primitive.NewObjectID(),
			Name:      fmt.Sprintf("Demo User %d", i+1),
			Email:     fmt.Sprintf("demo%d@example.com", i+1),
			Role:      role,
			APIToken:  uuid.NewString(),
			CreatedAt: now.AddDate(0, 0, -rng.Intn(90)),
		})
	}
	return users
}

func generateTemplates(rng *rand.Rand, users []userDocument, count int) []templateDocument {
	templates := make([]templateDocument, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		owner := users[rng.Intn(len(users))]
		created := now.AddDate(0, 0, -rng.Intn(60))
		templates = append(templates, templateDocument{
			ID:          primitive.NewObjectID(),
			OwnerID:     owner.ID,
			OwnerName:   owner.Name,
			Title:       fmt.Sprintf("Customer Feedback Survey %d", i+1),
			Description: "Tell us about your experience with the product.",
			Topic:       "feedback",
			Public:      rng.Intn(4) != 0,
			Tags:        pickTags(rng),
			Questions:   questionSchemas[i%len(questionSchemas)],
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	return templates
}

func generateSubmissions(rng *rand.Rand, templates []templateDocument, users []userDocument, count int) []submissionDocument {
	submissions := make([]submissionDocument, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		template := templates[rng.Intn(len(templates))]
		submitter := users[rng.Intn(len(users))]
		submissions = append(submissions, submissionDocument{
			ID:         primitive.NewObjectID(),
			TemplateID: template.ID,
			UserID:     submitter.ID,
			Answers:    generateAnswers(rng, template.Questions),
			CreatedAt:  now.Add(-time.Duration(rng.Intn(40*24)) * time.Hour),
		})
	}
	return submissions
}

// generateAnswers は設問スキーマに沿った回答マップを作る。スキーマが壊れて
// いるテンプレートには、こちらも壊れた回答を入れて耐性を確認できるようにする。
func generateAnswers(rng *rand.Rand, questions interface{}) interface{} {
	list, ok := questions.([]interface{})
	if !ok {
		return "corrupt answer payload"
	}

	answers := make(map[string]interface{}, len(list))
	for i, entry := range list {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if rng.Intn(5) == 0 {
			continue
		}
		switch fields["type"] {
		case "rating", "linear":
			answers[strconv.Itoa(i)] = rng.Intn(5) + 1
		case "integer":
			answers[strconv.Itoa(i)] = rng.Intn(20)
		case "checkbox":
			picked := make([]interface{}, 0, 2)
			for _, option := range platformOptions {
				if rng.Intn(2) == 0 {
					picked = append(picked, option)
				}
			}
			answers[strconv.Itoa(i)] = picked
		case "radio":
			answers[strconv.Itoa(i)] = []string{"Yes", "No", "Maybe"}[rng.Intn(3)]
		case "select":
			answers[strconv.Itoa(i)] = []string{"Free", "Pro", "Enterprise"}[rng.Intn(3)]
		default:
			answers[strconv.Itoa(i)] = textAnswers[rng.Intn(len(textAnswers))]
		}
	}
	return answers
}

func generateComments(rng *rand.Rand, templates []templateDocument, users []userDocument, count int) []commentDocument {
	phrases := []string{
		"Great template, thanks for sharing!",
		"Could you add a question about pricing?",
		"We used this for our onboarding survey.",
		"The rating scale is a bit confusing.",
	}
	comments := make([]commentDocument, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		template := templates[rng.Intn(len(templates))]
		author := users[rng.Intn(len(users))]
		comments = append(comments, commentDocument{
			ID:         primitive.NewObjectID(),
			TemplateID: template.ID,
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Text:       phrases[rng.Intn(len(phrases))],
			CreatedAt:  now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
		})
	}
	return comments
}

func pickTags(rng *rand.Rand) []string {
	tags := make([]string, 0, 2)
	for _, tag := range sampleTags {
		if rng.Intn(3) == 0 {
			tags = append(tags, tag)
		}
	}
	return tags
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) error {
	for _, name := range []string{cfg.users, cfg.templates, cfg.submissions, cfg.comments} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, cfg collections) error {
	_, err := db.Collection(cfg.submissions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "templateId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(cfg.users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "apiToken", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(cfg.comments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "templateId", Value: 1}},
	})
	return err
}

func insertMany(ctx context.Context, collection *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](docs []T) []interface{} {
	out := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc)
	}
	return out
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
