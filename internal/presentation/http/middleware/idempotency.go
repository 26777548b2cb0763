package middleware

import (
	"bytes"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
	"golang.org/x/crypto/blake2b"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotencyKeyTTL    = 24 * time.Hour
	maxIdempotentBody    = 1 << 20
)

type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
}

// bodyRecorder copies the response body while it is written.
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request is retried with
// the same Idempotency-Key. The key is scoped to the user and the session,
// and a retry with a different body is rejected. Only 2xx responses are
// stored so a failed attempt can be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = IdempotencyKeyTTL
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		raw, _ := c.Get(ContextUserID)
		userID, ok := raw.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}
		if len(key) > 200 {
			response.BadRequest(c, IdempotencyKeyHeader+" must be at most 200 characters")
			c.Abort()
			return
		}
		if v, _ := c.Get(ContextSessionID); v != nil {
			sid := v.(uuid.UUID)
			key = sid.String() + ":" + key
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIdempotentBody+1))
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			c.Abort()
			return
		}
		if len(body) > maxIdempotentBody {
			response.ErrorWithCode(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := blake2b.Sum256(body)
		hash := hex.EncodeToString(sum[:])
		endpoint := c.Request.Method + " " + c.FullPath()

		ctx := c.Request.Context()
		existing, err := cfg.Repo.GetByKey(ctx, key, userID)
		if err != nil {
			slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
			c.Next()
			return
		}
		if existing != nil && existing.IsExpired(time.Now()) {
			if err := cfg.Repo.Delete(ctx, key, userID); err != nil {
				slog.WarnContext(ctx, "expired idempotency key not removed", "key", key, "error", err)
			}
			existing = nil
		}
		if existing != nil {
			if existing.RequestHash != hash || existing.Endpoint != endpoint {
				response.ValidationError(c, "idempotency_key", "was already used with a different request")
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		ikey := &entity.IdempotencyKey{
			Key:          key,
			UserID:       userID,
			Endpoint:     endpoint,
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: rec.body.String(),
			ExpiresAt:    time.Now().Add(cfg.TTL),
		}
		if err := cfg.Repo.Create(ctx, ikey); err != nil {
			slog.WarnContext(ctx, "idempotency key not stored", "key", key, "error", err)
		}
	}
}
