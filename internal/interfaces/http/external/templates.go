package external

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	analyticsapp "github.com/formbase/formbase-services/api/internal/analytics/application"
	"github.com/formbase/formbase-services/api/internal/interfaces/http/common"
)

// templateListHandler はトークン所有者の公開テンプレートを設問集計付きで
// 一括返却する外部連携 API。
func (h *Handler) templateListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		list, err := h.external.ListTemplates(ctx, analyticsapp.ExternalUser{ID: user.ID, Name: user.Name})
		if err != nil {
			h.logger.Printf("外部向けテンプレート一覧の生成に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "テンプレート一覧の生成に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, list)
	}
}

// templateDetailHandler は単一テンプレートの全回答を submitter 付きで返す。
// 存在しない・非公開・他人のテンプレートはすべて 404 として扱う。
func (h *Handler) templateDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if _, err := primitive.ObjectIDFromHex(idParam); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "テンプレートIDの形式が不正です"})
			return
		}

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		detail, err := h.external.TemplateDetail(ctx, user.ID, idParam)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, analyticsapp.ErrTemplateNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "テンプレートが見つかりません"})
				return
			}
			h.logger.Printf("外部向けテンプレート詳細の生成に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "テンプレート詳細の生成に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, detail)
	}
}
