package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// plainValue はデコード済み bson 値をプレーンな Go 値へ再帰的に変換する。
// ドメイン層にドライバ型 (primitive.A / bson.D など) を一切見せないための境界。
func plainValue(value interface{}) interface{} {
	switch v := value.(type) {
	case primitive.A:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, plainValue(item))
		}
		return out
	case bson.M:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = plainValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(v))
		for _, elem := range v {
			out[elem.Key] = plainValue(elem.Value)
		}
		return out
	case primitive.DateTime:
		return v.Time()
	case primitive.ObjectID:
		return v.Hex()
	case primitive.Decimal128:
		return v.String()
	case primitive.Null:
		return nil
	default:
		return v
	}
}
