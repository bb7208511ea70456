package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (c *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	c.counts[key]++
	return c.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func bookingLimit(max int) Limit {
	return Limit{
		Prefix:  "rl:bookings",
		Max:     max,
		Window:  15 * time.Minute,
		Message: "Too many booking attempts. Try again later.",
	}
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	counter := &memCounter{}
	h := RateLimit(counter, bookingLimit(2), logger.NewWithWriter(io.Discard, "info"))(okHandler())

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/public/bookings", nil)
		req.RemoteAddr = ip + ":51000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, send("10.0.0.1").Code)

	blocked := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "900", blocked.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many booking attempts. Try again later."}`, blocked.Body.String())

	assert.Equal(t, http.StatusCreated, send("10.0.0.2").Code)
	assert.Equal(t, int64(3), counter.counts["rl:bookings:10.0.0.1"])
}

// Клиент без доверенного прокси не может сбросить счётчик, меняя X-Forwarded-For
func TestRateLimit_IgnoresSpoofedForwardedFor(t *testing.T) {
	counter := &memCounter{}
	h := RateLimit(counter, bookingLimit(10), logger.NewWithWriter(io.Discard, "info"))(okHandler())

	var created, blocked int
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/public/bookings", nil)
		req.RemoteAddr = "203.0.113.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		switch rec.Code {
		case http.StatusCreated:
			created++
		case http.StatusTooManyRequests:
			blocked++
		}
	}

	assert.Equal(t, 10, created)
	assert.Equal(t, 40, blocked)
	assert.Len(t, counter.counts, 1)
}

// За прокси ключом служит адрес, дописанный прокси, а не выставленный клиентом
func TestRateLimit_TrustedProxyUsesLastHop(t *testing.T) {
	counter := &memCounter{}
	limit := bookingLimit(2)
	limit.TrustProxy = true
	h := RateLimit(counter, limit, logger.NewWithWriter(io.Discard, "info"))(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/public/bookings", nil)
		req.RemoteAddr = "10.0.0.2:8080"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d, 203.0.113.9", i))
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, int64(3), counter.counts["rl:bookings:203.0.113.9"])
}

func TestRateLimit_FailOpen(t *testing.T) {
	counter := &memCounter{err: errors.New("dial tcp: connection refused")}
	h := RateLimit(counter, Limit{Prefix: "rl", Max: 1, Window: time.Minute}, logger.NewWithWriter(io.Discard, "info"))(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/public/bookings", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}

// Общий лимит на /api и лимит заявок считаются раздельно
func TestRateLimit_GeneralAndBookingLimitsStack(t *testing.T) {
	counter := &memCounter{}
	log := logger.NewWithWriter(io.Discard, "info")

	general := RateLimit(counter, Limit{Prefix: "rl:api", Max: 3, Window: time.Minute, Message: "Too many requests"}, log)
	booking := RateLimit(counter, bookingLimit(10), log)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(general)
	api.Handle("/public/workshops", okHandler()).Methods(http.MethodGet)
	bookings := api.PathPrefix("/public/bookings").Subrouter()
	bookings.Use(booking)
	bookings.Handle("", okHandler()).Methods(http.MethodPost)

	send := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "10.0.0.1:51000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send(http.MethodGet, "/api/public/workshops").Code)
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, "/api/public/bookings").Code)
	assert.Equal(t, http.StatusCreated, send(http.MethodGet, "/api/public/workshops").Code)

	blocked := send(http.MethodGet, "/api/public/workshops")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, blocked.Body.String())

	assert.Equal(t, int64(4), counter.counts["rl:api:10.0.0.1"])
	assert.Equal(t, int64(1), counter.counts["rl:bookings:10.0.0.1"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4000"
	req.Header.Set("X-Real-IP", "198.51.100.7")
	req.Header.Set("X-Forwarded-For", "203.0.113.5")

	assert.Equal(t, "192.0.2.10", ClientIP(req, false))
	assert.Equal(t, "203.0.113.5", ClientIP(req, true))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "10.0.0.1", ClientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "198.51.100.7", ClientIP(req, true))

	req.RemoteAddr = "unix"
	assert.Equal(t, "unix", ClientIP(req, false))
}
