package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/forum/internal/service"
)

var _ = Describe("SubscriptionService", func() {
	var (
		ctx   context.Context
		forum *memForum
		svc   service.SubscriptionService
	)

	BeforeEach(func() {
		ctx = context.Background()
		forum = newMemForum()
		svc = service.NewSubscriptionService(forum.Subscriptions())
	})

	It("subscribes a user once however often they ask", func() {
		Expect(svc.Subscribe(ctx, 100, 1)).To(Succeed())
		Expect(svc.Subscribe(ctx, 100, 1)).To(Succeed())

		subscribers, err := svc.Subscribers(ctx, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(subscribers).To(Equal([]int64{1}))

		subscribed, err := svc.IsSubscribed(ctx, 100, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(subscribed).To(BeTrue())
	})

	It("unsubscribes only the given user", func() {
		Expect(svc.Subscribe(ctx, 100, 1)).To(Succeed())
		Expect(svc.Subscribe(ctx, 100, 2)).To(Succeed())

		Expect(svc.Unsubscribe(ctx, 100, 1)).To(Succeed())

		subscribers, err := svc.Subscribers(ctx, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(subscribers).To(Equal([]int64{2}))
	})

	It("treats unsubscribing a non-subscriber as done", func() {
		Expect(svc.Unsubscribe(ctx, 100, 7)).To(Succeed())

		subscribed, err := svc.IsSubscribed(ctx, 100, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(subscribed).To(BeFalse())
	})
})
