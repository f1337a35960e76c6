package public

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/formbase/formbase-services/api/internal/interfaces/http/common"
	searchdomain "github.com/formbase/formbase-services/api/internal/search/domain"
)

// searchHandler はテンプレート・設問・コメントを横断する公開検索 API。
// クエリ長の検証はここで行い、ランキングには検証済みクエリだけを渡す。
func (h *Handler) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if utf8.RuneCountInString(query) < searchdomain.MinQueryLength {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "検索キーワードは2文字以上で指定してください"})
			return
		}

		hits, err := h.search.Search(ctx, query)
		if err != nil {
			h.logger.Printf("横断検索に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "検索に失敗しました"})
			return
		}
		if hits == nil {
			hits = []searchdomain.Hit{}
		}

		common.WriteJSON(h.logger, w, http.StatusOK, hits)
	}
}

// tagCloudHandler は公開テンプレートのタグ頻度を返す。
func (h *Handler) tagCloudHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		counts, err := h.tags.Cloud(ctx)
		if err != nil {
			h.logger.Printf("タグクラウドの集計に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "タグ一覧の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, counts)
	}
}
