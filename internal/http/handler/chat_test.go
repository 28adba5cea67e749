package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chatops.app/courier/internal/http/handler"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

var _ = Describe("ChatHandler", func() {
	var (
		router *gin.Engine
		chat   *mockChatService
	)

	const contactID = "5511999998888@c.us"

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		chat = &mockChatService{}

		h := handler.NewChatHandler(chat)
		router.GET("/api/chats/:id/messages", h.History)
		router.POST("/api/chats/:id/messages", h.Send)
	})

	sendBody := func(fields map[string]string) *bytes.Buffer {
		body, err := json.Marshal(fields)
		Expect(err).NotTo(HaveOccurred())
		return bytes.NewBuffer(body)
	}

	Describe("Send", func() {
		It("returns 201 with the stored message", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost,
				fmt.Sprintf("/api/chats/%s/messages", contactID),
				sendBody(map[string]string{
					"text":          "How can I help?",
					"sender":        "operator",
					"operator_name": "Joana",
				}))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).To(ContainSubstring(`"id":"assigned"`))
		})

		It("returns 400 for an unknown sender", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost,
				fmt.Sprintf("/api/chats/%s/messages", contactID),
				sendBody(map[string]string{"text": "hi", "sender": "system"}))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for a malformed chat identifier", func() {
			chat.sendFn = func(ctx context.Context, contactID string, msg model.Message) (model.Message, error) {
				return model.Message{}, service.ErrInvalidContactID
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/chats/garbage/messages",
				sendBody(map[string]string{"text": "hi", "sender": "user"}))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 503 when the store is unreachable", func() {
			chat.sendFn = func(ctx context.Context, contactID string, msg model.Message) (model.Message, error) {
				return model.Message{}, store.ErrUnavailable
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost,
				fmt.Sprintf("/api/chats/%s/messages", contactID),
				sendBody(map[string]string{"text": "hi", "sender": "user"}))
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("History", func() {
		It("returns an empty message list for a fresh conversation", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet,
				fmt.Sprintf("/api/chats/%s/messages", contactID), nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"messages":[]`))
		})

		It("returns messages in append order", func() {
			chat.historyFn = func(ctx context.Context, id string) ([]model.Message, error) {
				return []model.Message{
					{ID: "1", ContactID: id, Text: "first", Sender: model.SenderUser},
					{ID: "2", ContactID: id, Text: "second", Sender: model.SenderBot},
				}, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet,
				fmt.Sprintf("/api/chats/%s/messages", contactID), nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Messages []struct {
					Text string `json:"text"`
				} `json:"messages"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Messages).To(HaveLen(2))
			Expect(resp.Messages[0].Text).To(Equal("first"))
			Expect(resp.Messages[1].Text).To(Equal("second"))
		})
	})
})
