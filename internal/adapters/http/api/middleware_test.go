package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/featurelab/pkg/logger"
	"github.com/okian/featurelab/pkg/metrics"
)

func TestChain(t *testing.T) {
	Convey("Given two tagging middlewares", t, func() {
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}
		h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		}), tag("outer"), tag("inner"))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", http.NoBody))

		Convey("Then the first one runs outermost", func() {
			So(order, ShouldResemble, []string{"outer", "inner", "handler"})
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given the request id middleware", t, func() {
		var seen string
		h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r.Context())
		}))

		Convey("A new id is assigned when none is sent", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))
			So(seen, ShouldHaveLength, 36)
			So(w.Header().Get(RequestIDHeader), ShouldEqual, seen)
		})

		Convey("A caller id is propagated", func() {
			req := httptest.NewRequest("GET", "/", http.NoBody)
			req.Header.Set(RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(seen, ShouldEqual, "abc-123")
			So(w.Header().Get(RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("An oversized caller id is replaced", func() {
			req := httptest.NewRequest("GET", "/", http.NoBody)
			req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
			h.ServeHTTP(httptest.NewRecorder(), req)
			So(seen, ShouldHaveLength, 36)
		})

		Convey("Contexts without an id give an empty string", func() {
			So(RequestIDFrom(context.Background()), ShouldBeEmpty)
		})
	})
}

func TestCORS(t *testing.T) {
	Convey("Given CORS for one origin", t, func() {
		h := CORS([]string{"https://example.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		Convey("Allowed origins get the header", func() {
			req := httptest.NewRequest("GET", "/colors", http.NoBody)
			req.Header.Set("Origin", "https://example.com")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://example.com")
		})

		Convey("Other origins do not", func() {
			req := httptest.NewRequest("GET", "/colors", http.NoBody)
			req.Header.Set("Origin", "https://evil.test")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})
	})
}

func TestAccessLog(t *testing.T) {
	Convey("Given an access logger writing JSON", t, func() {
		var buf strings.Builder
		So(logger.Init(logger.WithFormat("json"), logger.WithWriter(&buf)), ShouldBeNil)
		h := AccessLog(logger.Get())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/brew", http.NoBody))

		Convey("Then one line records the request", func() {
			So(buf.String(), ShouldContainSubstring, `"msg":"request completed"`)
			So(buf.String(), ShouldContainSubstring, `"path":"/brew"`)
			So(buf.String(), ShouldContainSubstring, `"status":418`)
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler that fails", t, func() {
		h := MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, "mw_test")

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", http.NoBody))

		Convey("Then the error family is counted", func() {
			n, err := testutil.GatherAndCount(metrics.GetRegistry(), "featurelab_http_errors_total")
			So(err, ShouldBeNil)
			So(n, ShouldBeGreaterThan, 0)
		})
	})

	Convey("Error types follow the status code", t, func() {
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(401), ShouldEqual, "unauthorized")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(413), ShouldEqual, "payload_too_large")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorType(302), ShouldEqual, "unknown")
	})
}

func TestDecodeObject(t *testing.T) {
	decode := func(contentType, body string, limit int64) (map[string]any, error) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return decodeObject(httptest.NewRecorder(), req, limit)
	}

	Convey("Given request bodies", t, func() {
		Convey("JSON objects decode with numbers preserved", func() {
			obj, err := decode("application/json; charset=utf-8", `{"a":1.50}`, 1024)
			So(err, ShouldBeNil)
			So(obj["a"], ShouldEqual, json.Number("1.50"))
		})

		Convey("Non-JSON and empty bodies are empty objects", func() {
			obj, err := decode("text/plain", `{"a":1}`, 1024)
			So(err, ShouldBeNil)
			So(obj, ShouldBeEmpty)

			obj, err = decode("application/json", "  ", 1024)
			So(err, ShouldBeNil)
			So(obj, ShouldBeEmpty)
		})

		Convey("Primitives are bad requests", func() {
			_, err := decode("application/json", `42`, 1024)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
		})

		Convey("Oversized bodies are too large", func() {
			_, err := decode("application/json", `{"a":"0123456789"}`, 8)
			So(errors.Is(err, ErrPayloadTooLarge), ShouldBeTrue)
			So(statusFor(err), ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})

	Convey("Given wrapped kinds", t, func() {
		err := fmt.Errorf("outer: %w", NewKind("inner", ErrUnauthorized))
		So(errors.Is(err, ErrUnauthorized), ShouldBeTrue)
		So(statusFor(err), ShouldEqual, http.StatusUnauthorized)
		So(publicMessage(err), ShouldEqual, apiKeyErrorMessage)
		So(statusFor(errors.New("boom")), ShouldEqual, http.StatusInternalServerError)
	})
}
