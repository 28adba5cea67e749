package service_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

var _ = Describe("ChatService", func() {
	var (
		ctx           context.Context
		conversations *mockConversationStore
		svc           service.ChatService
	)

	const contactID = "5511999998888@c.us"

	BeforeEach(func() {
		ctx = context.Background()
		conversations = &mockConversationStore{}
		svc = service.NewChatService(conversations)
	})

	Describe("Send", func() {
		It("appends through the conversation store", func() {
			sent, err := svc.Send(ctx, contactID, model.Message{
				Text:         "How can I help?",
				Sender:       model.SenderOperator,
				OperatorName: "Joana",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sent.ID).NotTo(BeEmpty())
			Expect(conversations.appended).To(HaveLen(1))
		})

		It("rejects malformed chat identifiers before touching the store", func() {
			_, err := svc.Send(ctx, "not-a-chat-id", model.Message{
				Text:   "hi",
				Sender: model.SenderUser,
			})
			Expect(errors.Is(err, service.ErrInvalidContactID)).To(BeTrue())
			Expect(conversations.appended).To(BeEmpty())
		})

		It("surfaces store unavailability without retrying", func() {
			calls := 0
			conversations.appendFn = func(ctx context.Context, contactID string, msg model.Message) (model.Message, error) {
				calls++
				return model.Message{}, store.ErrUnavailable
			}
			_, err := svc.Send(ctx, contactID, model.Message{Text: "hi", Sender: model.SenderUser})
			Expect(errors.Is(err, store.ErrUnavailable)).To(BeTrue())
			Expect(calls).To(Equal(1))
		})
	})

	Describe("History", func() {
		It("returns an empty history for a contact with no messages", func() {
			history, err := svc.History(ctx, contactID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(BeEmpty())
		})

		It("returns messages in append order", func() {
			for i := 0; i < 3; i++ {
				_, err := svc.Send(ctx, contactID, model.Message{
					Text:   fmt.Sprintf("message %d", i),
					Sender: model.SenderUser,
				})
				Expect(err).NotTo(HaveOccurred())
			}

			history, err := svc.History(ctx, contactID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(3))
			for i, msg := range history {
				Expect(msg.Text).To(Equal(fmt.Sprintf("message %d", i)))
			}
		})

		It("rejects malformed chat identifiers", func() {
			_, err := svc.History(ctx, "12345@c.us")
			Expect(errors.Is(err, service.ErrInvalidContactID)).To(BeTrue())
		})
	})
})
