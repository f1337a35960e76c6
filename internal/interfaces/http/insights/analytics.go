package insights

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

// templateAnalyticsHandler はテンプレート所有者向けの集計レポート API。
// 所有者または管理者のみ参照できる。認可はこのハンドラの責務で、集計側は
// テンプレートの存在確認のみを行う。
func (h *Handler) templateAnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

		template, err := h.templates.FindByID(ctx, idParam)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "テンプレートが見つかりません"})
				return
			}
			h.logger.Printf("テンプレートの取得に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "テンプレートの取得に失敗しました"})
			return
		}

		if template.OwnerID != user.ID && !user.IsAdmin() {
			common.WriteJSON(h.logger, w, http.StatusForbidden, map[string]string{"error": "このテンプレートの分析を閲覧する権限がありません"})
			return
		}

		report, err := h.analytics.TemplateReport(ctx, idParam)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, analyticsapp.ErrTemplateNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "テンプレートが見つかりません"})
				return
			}
			h.logger.Printf("集計レポートの生成に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "集計レポートの生成に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, report)
	}
}
