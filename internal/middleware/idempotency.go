package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyCacheTTL = 24 * time.Hour

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// bodyRecorder menyalin body response supaya bisa disimpan ke cache
// setelah handler selesai.
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// Idempotency mencegah POST ganda (double submit pengajuan cuti) memakai
// Idempotency-Key header. Response sukses pertama di-cache, request kedua
// dengan key yang sama mendapat replay response yang sama.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		// 1. Cek cache, replay kalau sudah pernah sukses
		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		// 2. Atomic lock (SetNX). Expiry pendek agar lock hilang sendiri
		// kalau server crash di tengah jalan.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Your request is still being processed, please wait.",
			})
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		// 3. Response sukses masuk cache, lock dilepas
		status := rec.Status()
		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			payload, err := json.Marshal(cachedResponse{Status: status, Body: rec.body.Bytes()})
			if err == nil {
				rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyCacheTTL)
			}
		}
		rdb.Del(c.Request.Context(), lockKey)
	}
}
