package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chatops.app/courier/internal/http/handler"
	"chatops.app/courier/internal/importer"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

var _ = Describe("DirectoryHandler", func() {
	var (
		router    *gin.Engine
		imports   *mockImportService
		directory *mockDirectoryStore
		view      *staticView
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		imports = &mockImportService{}
		directory = &mockDirectoryStore{}
		view = &staticView{}

		h := handler.NewDirectoryHandler(imports, directory, view)
		router.POST("/api/directory/import", h.Import)
		router.GET("/api/directory", h.List)
		router.DELETE("/api/directory/:id", h.Remove)
	})

	importBody := func(format, doc string) *bytes.Buffer {
		body, err := json.Marshal(map[string]string{"format": format, "document": doc})
		Expect(err).NotTo(HaveOccurred())
		return bytes.NewBuffer(body)
	}

	Describe("Import", func() {
		It("returns the import summary on success", func() {
			imports.importFn = func(_ context.Context, doc string, format importer.Format) (service.ImportResult, error) {
				Expect(format).To(Equal(importer.FormatCSV))
				return service.ImportResult{ImportID: "run-1", Added: 2, Total: 5}, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/directory/import", importBody("csv", "name,phone\n"))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["added"]).To(BeEquivalentTo(2))
			Expect(resp["total"]).To(BeEquivalentTo(5))
		})

		It("returns 422 for a structurally invalid document", func() {
			imports.importFn = func(_ context.Context, doc string, format importer.Format) (service.ImportResult, error) {
				return service.ImportResult{}, &importer.ParseError{Format: format, Reason: "no BEGIN:VCARD block found"}
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/directory/import", importBody("vcard", "garbage"))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("returns 503 when the store is unreachable", func() {
			imports.importFn = func(_ context.Context, doc string, format importer.Format) (service.ImportResult, error) {
				return service.ImportResult{}, store.ErrUnavailable
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/directory/import", importBody("csv", "name,phone\n"))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("rejects unknown formats", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/directory/import", importBody("xlsx", "data"))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("List", func() {
		It("serves the poller snapshot when fresh", func() {
			view.dir = model.Directory{{ID: "5511999998888@c.us", Name: "Ana"}}
			view.fresh = true
			directory.loadFn = func(ctx context.Context) (model.Directory, error) {
				Fail("store should not be hit when the snapshot is fresh")
				return nil, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/directory", nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("5511999998888@c.us"))
		})

		It("falls back to a direct load before the first poll", func() {
			directory.loadFn = func(ctx context.Context) (model.Directory, error) {
				return model.Directory{{ID: "5521988887777@c.us", Name: "Bruno"}}, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/directory", nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Bruno"))
		})

		It("reports an empty directory as an empty list, not an error", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/directory", nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"contacts":[]`))
		})

		It("returns 503 when the store is unreachable", func() {
			directory.loadFn = func(ctx context.Context) (model.Directory, error) {
				return nil, store.ErrUnavailable
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/directory", nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("Remove", func() {
		It("removes the contact and returns 204", func() {
			removed := ""
			directory.removeFn = func(ctx context.Context, contactID string) error {
				removed = contactID
				return nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/api/directory/5511999998888@c.us", nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(removed).To(Equal("5511999998888@c.us"))
		})
	})
})
