package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/featurelab/internal/adapters/http/api"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a swagger handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		convey.Convey("When registering the swagger handler", func() {
			Register(ctx, mux)

			convey.Convey("Then it should handle /openapi.yaml route", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.Len(), convey.ShouldBeGreaterThan, 0)
			})

			convey.Convey("And it should handle /api-docs route", func() {
				req := httptest.NewRequest("GET", "/api-docs", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Feature Lab API Docs")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, redocScriptURL)
			})

			convey.Convey("And it should refuse other methods", func() {
				req := httptest.NewRequest("POST", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestOpenAPICoversRoutes(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		doc, err := yaml.Parser().Unmarshal(OpenAPI)
		convey.So(err, convey.ShouldBeNil)

		paths, ok := doc["paths"].(map[string]any)
		convey.So(ok, convey.ShouldBeTrue)

		convey.Convey("Then every registered route is documented with its method", func() {
			for _, rt := range api.NewServer().Routes() {
				path := strings.TrimSuffix(rt.Pattern, "{$}")
				item, ok := paths[path].(map[string]any)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(item, convey.ShouldContainKey, strings.ToLower(rt.Method))
			}
		})

		convey.Convey("Then HTML examples survive as whole strings", func() {
			example := lookup(paths, "/cube/{number}", "get", "responses", "200", "content", "text/html", "schema", "example")
			convey.So(example, convey.ShouldEqual, "<h3>Number: 3</h3><p>Cube: 27</p>")

			example = lookup(paths, "/factorial/{n}", "get", "responses", "200", "content", "text/html", "schema", "example")
			convey.So(example, convey.ShouldEqual, "<h3>Factorial of 5</h3><p>Result: 120</p>")
		})
	})
}

// lookup walks nested YAML maps and returns nil when a key is missing.
func lookup(node any, keys ...string) any {
	for _, key := range keys {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = m[key]
	}
	return node
}

func TestSwaggerHandlerWithNilMux(t *testing.T) {
	convey.Convey("Given a nil mux", t, func() {
		ctx := context.Background()

		convey.Convey("When registering the swagger handler", func() {
			convey.Convey("Then it should panic", func() {
				convey.So(func() {
					Register(ctx, nil)
				}, convey.ShouldPanic)
			})
		})
	})
}
