package service

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/featurelab/internal/config"
	"github.com/okian/featurelab/pkg/logger"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	return cfg
}

func get(t *testing.T, url string, headers map[string]string) (int, http.Header, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header, string(body)
}

func TestServiceLifecycle(t *testing.T) {
	convey.Convey("Given a service on an ephemeral port", t, func() {
		ctx := context.Background()
		svc := New(WithConfig(testConfig()), WithLogger(logger.Nop()))

		convey.So(svc.Addr(), convey.ShouldBeEmpty)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		convey.Convey("Then routes are served through the middleware chain", func() {
			code, hdr, body := get(t, svc.URL()+"/colors", nil)
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldEqual, `{"colors":["red","blue","green","yellow"]}`)
			convey.So(hdr.Get("X-Request-Id"), convey.ShouldNotBeEmpty)
		})

		convey.Convey("Then trailing slashes are tolerated", func() {
			code, _, body := get(t, svc.URL()+"/greet/?name=Ana", nil)
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldEqual, "<h2>Hello, Ana!</h2>")
		})

		convey.Convey("Then the docs are served", func() {
			code, _, _ := get(t, svc.URL()+"/openapi.yaml", nil)
			convey.So(code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then a second Start is refused", func() {
			convey.So(errors.Is(svc.Start(ctx), ErrAlreadyStarted), convey.ShouldBeTrue)
		})

		convey.Convey("When the service is stopped", func() {
			convey.So(svc.Stop(ctx), convey.ShouldBeNil)

			convey.Convey("Then Wait returns without error", func() {
				waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				convey.So(svc.Wait(waitCtx), convey.ShouldBeNil)
			})

			convey.Convey("And a second Stop is a no-op", func() {
				convey.So(svc.Stop(ctx), convey.ShouldBeNil)
			})
		})
	})
}

func TestServiceConfiguration(t *testing.T) {
	convey.Convey("Given a service with CORS and without docs", t, func() {
		ctx := context.Background()
		cfg := testConfig()
		cfg.DocsEnabled = false
		cfg.MetricsEnabled = false
		cfg.CORSAllowedOrigins = []string{"https://example.com"}
		cfg.APIKey = "s3cret"
		svc := New(WithConfig(cfg), WithLogger(logger.Nop()))

		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		convey.Convey("Then allowed origins get CORS headers", func() {
			_, hdr, _ := get(t, svc.URL()+"/colors", map[string]string{"Origin": "https://example.com"})
			convey.So(hdr.Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "https://example.com")
		})

		convey.Convey("Then disabled endpoints are absent", func() {
			code, _, _ := get(t, svc.URL()+"/api-docs", nil)
			convey.So(code, convey.ShouldEqual, http.StatusNotFound)
			code, _, _ = get(t, svc.URL()+"/metrics", nil)
			convey.So(code, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("Then the configured key guards the protected route", func() {
			code, _, _ := get(t, svc.URL()+"/protected-data", map[string]string{"api-key": "s3cret"})
			convey.So(code, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestServiceBindFailure(t *testing.T) {
	convey.Convey("Given a port that is already taken", t, func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		defer ln.Close()

		cfg := testConfig()
		cfg.Addr = ln.Addr().String()
		svc := New(WithConfig(cfg), WithLogger(logger.Nop()))

		convey.Convey("Then Start fails synchronously", func() {
			err := svc.Start(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "listen")
		})

		convey.Convey("Then Wait reports the service was never started", func() {
			convey.So(errors.Is(svc.Wait(context.Background()), ErrNotStarted), convey.ShouldBeTrue)
		})
	})
}
