package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dominion116/StyleHub/internal/constants"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// CallerMiddleware 從X-Account header取出呼叫者帳戶放入context
// 寫入類操作沒有帶帳戶就直接擋下，查詢類操作允許匿名
func CallerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := r.Header.Get("X-Account")
		if caller == "" && r.Method != http.MethodGet {
			writeError(w, http.StatusBadRequest, "missing X-Account header")
			return
		}

		ctx := context.WithValue(r.Context(), constants.CallerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AttachedValueMiddleware 解析X-Attached-Value header，代表隨請求附上的付款金額
func AttachedValueMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Attached-Value")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid X-Attached-Value header")
			return
		}

		ctx := context.WithValue(r.Context(), constants.AttachedValueKey, value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
