package service_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/service"
	"basegraph.app/forum/internal/store"
)

var _ = Describe("IssueService", func() {
	var (
		ctx      context.Context
		forum    *memForum
		txRunner *memTxRunner
		indexer  *mockIndexer
		tracker  *mockTracker
		cfg      service.IssueServiceConfig
		svc      service.IssueService
		replies  service.ReplyService
		alice    model.User
		bob      model.User
		general  model.Category
	)

	newService := func() {
		searchSvc := service.NewSearchService(forum, indexer)
		svc = service.NewIssueService(forum, txRunner, searchSvc, tracker, cfg)
		replies = service.NewReplyService(forum, txRunner, &mockProducer{}, searchSvc)
	}

	create := func(title string, creator int64) *service.IssueView {
		view, err := svc.Create(ctx, service.CreateIssueParams{
			CreatorID:   creator,
			CategoryID:  general.ID,
			Summary:     title,
			Description: "details",
		})
		Expect(err).NotTo(HaveOccurred())
		return view
	}

	reply := func(issueID, userID int64) *model.Reply {
		issue, err := forum.Issues().GetByID(ctx, issueID)
		Expect(err).NotTo(HaveOccurred())
		r, err := replies.Add(ctx, issue, service.AddReplyParams{UserID: userID, Body: "me too"})
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	BeforeEach(func() {
		ctx = context.Background()
		forum = newMemForum()
		txRunner = &memTxRunner{forum: forum}
		indexer = newMockIndexer()
		tracker = newMockTracker()
		// watermarks follow the fake database clock
		tracker.recordFn = func(_ context.Context, userID, issueID int64, _ time.Time) error {
			tracker.seen[[2]int64{userID, issueID}] = forum.clock
			return nil
		}
		cfg = service.IssueServiceConfig{}
		alice = forum.addUser(1, "alice")
		bob = forum.addUser(2, "bob")
		general = forum.addCategory(10, "general", "General")
		forum.addCategory(11, "billing", "Billing")
		newService()
	})

	Describe("Create", func() {
		It("derives the slug and path from the title", func() {
			view := create("Need Help", alice.ID)

			Expect(view.Issue.Slug).To(Equal("need-help"))
			Expect(view.Path()).To(Equal("/issues/general/need-help"))
			Expect(view.Issue.Title).To(Equal("Need Help"))
			Expect(view.Category.ID).To(Equal(general.ID))
		})

		It("suffixes the slug with the issue id when it is taken", func() {
			first := create("Need Help", alice.ID)
			second := create("Need Help", bob.ID)

			Expect(first.Issue.Slug).To(Equal("need-help"))
			Expect(second.Issue.Slug).To(Equal(fmt.Sprintf("need-help-%d", second.Issue.ID)))
		})

		It("retries once with the suffixed slug when an insert loses the race", func() {
			calls := 0
			forum.createIssueFn = func(*model.Issue) error {
				calls++
				if calls == 1 {
					return store.ErrSlugTaken
				}
				return nil
			}

			view := create("Need Help", alice.ID)

			Expect(txRunner.calls).To(Equal(2))
			Expect(view.Issue.Slug).To(Equal(fmt.Sprintf("need-help-%d", view.Issue.ID)))
			Expect(forum.issueCount()).To(Equal(1))
		})

		It("uses the fallback slug for titles without slug characters", func() {
			view := create("???", alice.ID)
			Expect(view.Issue.Slug).To(Equal("issue"))
		})

		It("records a created_issue activity and indexes the issue", func() {
			view := create("Need Help", alice.ID)

			activities := forum.activitiesFor(model.SubjectTypeIssue, view.Issue.ID)
			Expect(activities).To(HaveLen(1))
			Expect(activities[0].Type).To(Equal(model.ActivityTypeCreatedIssue))
			Expect(activities[0].UserID).To(Equal(alice.ID))

			doc, ok := indexer.docs[strconv.FormatInt(view.Issue.ID, 10)]
			Expect(ok).To(BeTrue())
			Expect(doc.Path).To(Equal("/issues/general/need-help"))
		})

		It("keeps the issue when indexing fails", func() {
			indexer.indexFn = func(context.Context, search.Document) error { return errors.New("typesense down") }

			view := create("Need Help", alice.ID)

			Expect(view).NotTo(BeNil())
			Expect(forum.issueCount()).To(Equal(1))
		})

		It("rejects missing fields", func() {
			_, err := svc.Create(ctx, service.CreateIssueParams{CreatorID: alice.ID})

			Expect(errors.Is(err, service.ErrValidation)).To(BeTrue())
			var verr *service.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Fields).To(HaveKey("summary"))
			Expect(verr.Fields).To(HaveKey("description"))
			Expect(verr.Fields).To(HaveKey("category_id"))
			Expect(forum.issueCount()).To(Equal(0))
		})

		It("rejects an unknown category without creating anything", func() {
			_, err := svc.Create(ctx, service.CreateIssueParams{
				CreatorID:   alice.ID,
				CategoryID:  999,
				Summary:     "Need Help",
				Description: "details",
			})

			var verr *service.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Fields["category_id"]).To(Equal("category does not exist"))
			Expect(forum.issueCount()).To(Equal(0))
			Expect(forum.activities).To(BeEmpty())
		})
	})

	Describe("Get", func() {
		It("finds an issue by category and slug", func() {
			created := create("Need Help", alice.ID)

			view, err := svc.Get(ctx, "general", "need-help")

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Issue.ID).To(Equal(created.Issue.ID))
		})

		It("returns ErrNotFound under the wrong category", func() {
			create("Need Help", alice.ID)

			_, err := svc.Get(ctx, "billing", "need-help")
			Expect(err).To(MatchError(service.ErrNotFound))
		})

		It("returns ErrNotFound for an unknown slug", func() {
			_, err := svc.Get(ctx, "general", "nope")
			Expect(err).To(MatchError(service.ErrNotFound))
		})
	})

	Describe("Show", func() {
		var issue *service.IssueView

		BeforeEach(func() {
			issue = create("Need Help", alice.ID)
		})

		It("counts every visit", func() {
			_, err := svc.Show(ctx, "general", "need-help", nil)
			Expect(err).NotTo(HaveOccurred())
			view, err := svc.Show(ctx, "general", "need-help", nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(view.Issue.Visits).To(Equal(int64(2)))
		})

		It("reports updates since the viewer's last visit", func() {
			first, err := svc.Show(ctx, "general", "need-help", &bob.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.HasUpdate).To(BeTrue())

			second, err := svc.Show(ctx, "general", "need-help", &bob.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.HasUpdate).To(BeFalse())

			reply(issue.Issue.ID, alice.ID)

			third, err := svc.Show(ctx, "general", "need-help", &bob.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(third.HasUpdate).To(BeTrue())
		})

		It("reports the viewer's subscription", func() {
			Expect(service.NewSubscriptionService(forum.Subscriptions()).Subscribe(ctx, issue.Issue.ID, bob.ID)).To(Succeed())

			view, err := svc.Show(ctx, "general", "need-help", &bob.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.IsSubscribed).To(BeTrue())

			view, err = svc.Show(ctx, "general", "need-help", &alice.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.IsSubscribed).To(BeFalse())
		})

		It("still shows the issue when the watermark store fails", func() {
			tracker.lastVisitedFn = func(context.Context, int64, int64) (time.Time, error) {
				return time.Time{}, errors.New("redis down")
			}
			tracker.recordFn = func(context.Context, int64, int64, time.Time) error {
				return errors.New("redis down")
			}

			view, err := svc.Show(ctx, "general", "need-help", &bob.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(view.HasUpdate).To(BeTrue())
			Expect(view.Issue.Visits).To(Equal(int64(1)))
		})
	})

	Describe("List", func() {
		var quiet, busy, other *service.IssueView

		BeforeEach(func() {
			quiet = create("Quiet", alice.ID)
			busy = create("Busy", bob.ID)
			var err error
			other, err = svc.Create(ctx, service.CreateIssueParams{
				CreatorID:   alice.ID,
				CategoryID:  11,
				Summary:     "Invoice",
				Description: "details",
			})
			Expect(err).NotTo(HaveOccurred())
			reply(busy.Issue.ID, alice.ID)
			reply(busy.Issue.ID, alice.ID)
		})

		ids := func(views []service.IssueView) []int64 {
			out := make([]int64, len(views))
			for i, v := range views {
				out[i] = v.Issue.ID
			}
			return out
		}

		It("lists newest first by default", func() {
			views, err := svc.List(ctx, service.ListIssuesParams{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(views)).To(Equal([]int64{other.Issue.ID, busy.Issue.ID, quiet.Issue.ID}))
			Expect(views[0].Path()).To(Equal("/issues/billing/invoice"))
		})

		It("orders popular issues by reply count", func() {
			views, err := svc.List(ctx, service.ListIssuesParams{Popular: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(views[0].Issue.ID).To(Equal(busy.Issue.ID))
		})

		It("keeps only unanswered issues", func() {
			views, err := svc.List(ctx, service.ListIssuesParams{Unanswered: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(views)).To(ConsistOf(quiet.Issue.ID, other.Issue.ID))
		})

		It("filters by category", func() {
			views, err := svc.List(ctx, service.ListIssuesParams{CategorySlug: "billing"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(views)).To(Equal([]int64{other.Issue.ID}))
		})

		It("filters by creator name", func() {
			views, err := svc.List(ctx, service.ListIssuesParams{By: "bob"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(views)).To(Equal([]int64{busy.Issue.ID}))
		})

		It("returns an empty list for an unknown creator", func() {
			views, err := svc.List(ctx, service.ListIssuesParams{By: "nobody"})
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(BeEmpty())
		})

		It("returns ErrNotFound for an unknown category", func() {
			_, err := svc.List(ctx, service.ListIssuesParams{CategorySlug: "nope"})
			Expect(err).To(MatchError(service.ErrNotFound))
		})
	})

	Describe("Update", func() {
		It("lets the creator edit and keeps the slug", func() {
			view := create("Need Help", alice.ID)

			updated, err := svc.Update(ctx, view.Issue.ID, alice.ID, service.UpdateIssueParams{
				Summary:     "Need Help Urgently",
				Description: "more details",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Issue.Summary).To(Equal("Need Help Urgently"))
			Expect(updated.Issue.Slug).To(Equal("need-help"))
			Expect(indexer.docs[strconv.FormatInt(view.Issue.ID, 10)].Summary).To(Equal("Need Help Urgently"))
		})

		It("forbids other users", func() {
			view := create("Need Help", alice.ID)

			_, err := svc.Update(ctx, view.Issue.ID, bob.ID, service.UpdateIssueParams{
				Summary:     "mine now",
				Description: "x",
			})
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("Delete", func() {
		var view *service.IssueView

		BeforeEach(func() {
			view = create("Need Help", alice.ID)
			reply(view.Issue.ID, bob.ID)
			reply(view.Issue.ID, bob.ID)
			reply(view.Issue.ID, alice.ID)
			Expect(service.NewSubscriptionService(forum.Subscriptions()).Subscribe(ctx, view.Issue.ID, bob.ID)).To(Succeed())
		})

		It("removes the issue with its replies and activities", func() {
			replyIDs := make([]int64, 0, 3)
			for _, r := range forum.replies {
				replyIDs = append(replyIDs, r.ID)
			}

			Expect(svc.Delete(ctx, view.Issue.ID, alice.ID)).To(Succeed())

			Expect(forum.issueCount()).To(Equal(0))
			Expect(forum.replyCount(view.Issue.ID)).To(Equal(0))
			Expect(forum.activitiesFor(model.SubjectTypeIssue, view.Issue.ID)).To(BeEmpty())
			for _, id := range replyIDs {
				Expect(forum.activitiesFor(model.SubjectTypeReply, id)).To(BeEmpty())
			}
			Expect(indexer.removed).To(ContainElement(view.Issue.ID))
		})

		It("keeps subscriptions by default", func() {
			Expect(svc.Delete(ctx, view.Issue.ID, alice.ID)).To(Succeed())
			Expect(forum.subscriptions).To(HaveLen(1))
		})

		It("prunes subscriptions when configured to", func() {
			cfg.PruneSubscriptionsOnDelete = true
			newService()

			Expect(svc.Delete(ctx, view.Issue.ID, alice.ID)).To(Succeed())
			Expect(forum.subscriptions).To(BeEmpty())
		})

		It("rolls everything back when one reply cannot be deleted", func() {
			deleted := 0
			forum.deleteReplyFn = func(int64) error {
				deleted++
				if deleted == 2 {
					return errors.New("connection reset")
				}
				return nil
			}

			err := svc.Delete(ctx, view.Issue.ID, alice.ID)

			Expect(err).To(HaveOccurred())
			Expect(forum.issueCount()).To(Equal(1))
			Expect(forum.replyCount(view.Issue.ID)).To(Equal(3))
			stored, _ := forum.Issues().GetByID(ctx, view.Issue.ID)
			Expect(stored.RepliesCount).To(Equal(int32(3)))
			Expect(indexer.removed).To(BeEmpty())
		})

		It("forbids users other than the creator", func() {
			err := svc.Delete(ctx, view.Issue.ID, bob.ID)

			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(forum.issueCount()).To(Equal(1))
		})

		It("returns ErrNotFound for an unknown issue", func() {
			Expect(svc.Delete(ctx, 12345, alice.ID)).To(MatchError(service.ErrNotFound))
		})
	})

	Describe("MarkBestReply", func() {
		var view *service.IssueView
		var answer *model.Reply

		BeforeEach(func() {
			view = create("Need Help", alice.ID)
			answer = reply(view.Issue.ID, bob.ID)
		})

		It("lets the creator accept a reply", func() {
			updated, err := svc.MarkBestReply(ctx, view.Issue.ID, answer.ID, alice.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Issue.BestReplyID).To(HaveValue(Equal(answer.ID)))
			Expect(updated.Issue.IsAnswered()).To(BeTrue())
		})

		It("forbids anyone else", func() {
			_, err := svc.MarkBestReply(ctx, view.Issue.ID, answer.ID, bob.ID)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("rejects a reply from another issue", func() {
			other := create("Other", alice.ID)
			foreign := reply(other.Issue.ID, bob.ID)

			_, err := svc.MarkBestReply(ctx, view.Issue.ID, foreign.ID, alice.ID)
			Expect(errors.Is(err, service.ErrValidation)).To(BeTrue())
		})
	})
})
