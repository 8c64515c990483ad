package handler_test

import (
	"context"
	"net/http"

	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SearchHandler", func() {
	var (
		deps *testDeps
		r    *gin.Engine
	)

	BeforeEach(func() {
		deps = newTestDeps()
		r = deps.engine()
	})

	It("returns 503 when search is disabled", func() {
		rec := do(r, http.MethodGet, "/search?q=deploy", 0, nil)
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
	})

	It("requires a query", func() {
		rec := do(r, http.MethodGet, "/search", 0, nil)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("applies the default limit and returns hits", func() {
		var limit int
		deps.search.searchFn = func(_ context.Context, query string, l int) ([]search.Document, error) {
			limit = l
			return []search.Document{{
				ID:           "500",
				Title:        "How to deploy",
				Summary:      "How to deploy",
				CategorySlug: "rails",
				Slug:         "how-to-deploy",
				Path:         "/issues/rails/how-to-deploy",
			}}, nil
		}

		rec := do(r, http.MethodGet, "/search?q=deploy", 0, nil)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(limit).To(Equal(20))
		hits := decode(rec)["data"].([]any)
		Expect(hits).To(HaveLen(1))
		Expect(hits[0]).To(HaveKeyWithValue("path", "/issues/rails/how-to-deploy"))
	})
})

var _ = Describe("ProfileHandler", func() {
	var (
		deps *testDeps
		r    *gin.Engine
	)

	BeforeEach(func() {
		deps = newTestDeps()
		r = deps.engine()
	})

	It("renders the user and their activity", func() {
		deps.profiles.getFn = func(_ context.Context, name string) (*service.Profile, error) {
			return &service.Profile{
				User: &model.User{ID: 1, Name: name},
				Activities: []model.Activity{{
					ID:          9,
					UserID:      1,
					Type:        model.ActivityTypeCreatedIssue,
					SubjectType: model.SubjectTypeIssue,
					SubjectID:   500,
				}},
			}, nil
		}

		rec := do(r, http.MethodGet, "/profiles/alice", 0, nil)

		Expect(rec.Code).To(Equal(http.StatusOK))
		body := decode(rec)
		Expect(body["user"]).To(HaveKeyWithValue("name", "alice"))
		Expect(body["activities"]).To(HaveLen(1))
	})

	It("returns 404 for an unknown user", func() {
		rec := do(r, http.MethodGet, "/profiles/nobody", 0, nil)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})
})
