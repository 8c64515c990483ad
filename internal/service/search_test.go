package service_test

import (
	"context"
	"errors"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/service"
)

var _ = Describe("SearchService", func() {
	var (
		ctx     context.Context
		forum   *memForum
		indexer *mockIndexer
		svc     service.SearchService
	)

	BeforeEach(func() {
		ctx = context.Background()
		forum = newMemForum()
		forum.addCategory(10, "general", "General")
		Expect(forum.Issues().Create(ctx, &model.Issue{ID: 100, CategoryID: 10, CreatorID: 1, Slug: "need-help", Summary: "Need Help"})).To(Succeed())
		indexer = newMockIndexer()
		svc = service.NewSearchService(forum, indexer)
	})

	It("indexes the current state of an issue", func() {
		Expect(svc.Reindex(ctx, 100)).To(Succeed())

		doc := indexer.docs["100"]
		Expect(doc.Summary).To(Equal("Need Help"))
		Expect(doc.CategorySlug).To(Equal("general"))
		Expect(doc.Path).To(Equal("/issues/general/need-help"))
	})

	It("removes issues that no longer exist", func() {
		Expect(svc.Reindex(ctx, 100)).To(Succeed())
		Expect(forum.Issues().Delete(ctx, 100)).To(Succeed())

		Expect(svc.Reindex(ctx, 100)).To(Succeed())

		Expect(indexer.removed).To(Equal([]int64{100}))
		Expect(indexer.docs).NotTo(HaveKey(strconv.Itoa(100)))
	})

	It("returns index failures to the caller", func() {
		indexer.indexFn = func(context.Context, search.Document) error { return errors.New("typesense down") }
		Expect(svc.Reindex(ctx, 100)).To(MatchError(ContainSubstring("typesense down")))
	})

	It("passes ErrDisabled through", func() {
		svc = service.NewSearchService(forum, nil)

		_, err := svc.Search(ctx, "help", 10)
		Expect(err).To(MatchError(search.ErrDisabled))
	})

	It("returns the indexer's hits", func() {
		indexer.searchFn = func(_ context.Context, query string, limit int) ([]search.Document, error) {
			Expect(query).To(Equal("help"))
			Expect(limit).To(Equal(5))
			return []search.Document{{ID: "100"}}, nil
		}

		docs, err := svc.Search(ctx, "help", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(HaveLen(1))
	})
})
