package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chatops.app/courier/internal/importer"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

var _ = Describe("ImportService", func() {
	var (
		ctx       context.Context
		directory *mockDirectoryStore
		svc       service.ImportService
	)

	BeforeEach(func() {
		ctx = context.Background()
		directory = &mockDirectoryStore{}
		svc = service.NewImportService(directory)
	})

	Describe("Import", func() {
		const doc = "name,phone\nAna Silva,+55 11 99999-8888\nBruno Costa,+55 21 98888-7777\n"

		It("extracts, dedupes and saves the merged directory", func() {
			result, err := svc.Import(ctx, doc, importer.FormatCSV)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Added).To(Equal(2))
			Expect(result.Total).To(Equal(2))
			Expect(result.Saved()).To(BeTrue())

			Expect(directory.saved).To(HaveLen(1))
			Expect(directory.saved[0]).To(ContainElement(model.Contact{
				ID:   "5511999998888@c.us",
				Name: "Ana Silva",
			}))
		})

		It("never overwrites existing directory entries", func() {
			directory.loadFn = func(ctx context.Context) (model.Directory, error) {
				return model.Directory{{ID: "5511999998888@c.us", Name: "Ana (edited)"}}, nil
			}

			result, err := svc.Import(ctx, doc, importer.FormatCSV)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Added).To(Equal(1))
			Expect(result.Total).To(Equal(2))

			saved := directory.saved[0]
			existing, ok := saved.ByID("5511999998888@c.us")
			Expect(ok).To(BeTrue())
			Expect(existing.Name).To(Equal("Ana (edited)"))
		})

		It("treats a document with no valid contacts as an empty import", func() {
			result, err := svc.Import(ctx, "name,phone\nNoPhone,\n", importer.FormatCSV)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Added).To(BeZero())
			Expect(directory.saved).To(HaveLen(1))
		})

		It("surfaces a ParseError for structurally invalid documents", func() {
			_, err := svc.Import(ctx, "not a vcard", importer.FormatVCard)
			var parseErr *importer.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(directory.saved).To(BeEmpty())
		})

		It("surfaces store unavailability from the load phase", func() {
			directory.loadFn = func(ctx context.Context) (model.Directory, error) {
				return nil, store.ErrUnavailable
			}
			_, err := svc.Import(ctx, doc, importer.FormatCSV)
			Expect(errors.Is(err, store.ErrUnavailable)).To(BeTrue())
		})
	})

	Describe("Retry", func() {
		const doc = "name,phone\nAna Silva,+55 11 99999-8888\n"

		It("re-saves the merged set without re-parsing", func() {
			failing := true
			directory.saveFn = func(ctx context.Context, dir model.Directory) error {
				if failing {
					return store.ErrUnavailable
				}
				return nil
			}

			result, err := svc.Import(ctx, doc, importer.FormatCSV)
			Expect(errors.Is(err, store.ErrUnavailable)).To(BeTrue())
			Expect(result.Saved()).To(BeFalse())
			Expect(result.Added).To(Equal(1))

			failing = false
			retried, err := svc.Retry(ctx, result)
			Expect(err).NotTo(HaveOccurred())
			Expect(retried.Saved()).To(BeTrue())
			Expect(directory.saved).To(HaveLen(2))
			Expect(directory.saved[1]).To(Equal(directory.saved[0]))
		})

		It("is a no-op for an already-saved result", func() {
			result, err := svc.Import(ctx, doc, importer.FormatCSV)
			Expect(err).NotTo(HaveOccurred())

			retried, err := svc.Retry(ctx, result)
			Expect(err).NotTo(HaveOccurred())
			Expect(retried.Saved()).To(BeTrue())
			Expect(directory.saved).To(HaveLen(1))
		})
	})
})
