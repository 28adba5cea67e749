package handler_test

import (
	"context"

	"chatops.app/courier/internal/importer"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/service"
)

type mockImportService struct {
	importFn func(ctx context.Context, doc string, format importer.Format) (service.ImportResult, error)
	retryFn  func(ctx context.Context, result service.ImportResult) (service.ImportResult, error)
}

func (m *mockImportService) Import(ctx context.Context, doc string, format importer.Format) (service.ImportResult, error) {
	if m.importFn != nil {
		return m.importFn(ctx, doc, format)
	}
	return service.ImportResult{}, nil
}

func (m *mockImportService) Retry(ctx context.Context, result service.ImportResult) (service.ImportResult, error) {
	if m.retryFn != nil {
		return m.retryFn(ctx, result)
	}
	return result, nil
}

type mockChatService struct {
	sendFn    func(ctx context.Context, contactID string, msg model.Message) (model.Message, error)
	historyFn func(ctx context.Context, contactID string) ([]model.Message, error)
}

func (m *mockChatService) Send(ctx context.Context, contactID string, msg model.Message) (model.Message, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, contactID, msg)
	}
	msg.ContactID = contactID
	msg.ID = "assigned"
	return msg, nil
}

func (m *mockChatService) History(ctx context.Context, contactID string) ([]model.Message, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, contactID)
	}
	return nil, nil
}

type mockResolveService struct {
	resolveFn func(ctx context.Context, term string) ([]service.Match, error)
	suggestFn func(ctx context.Context, messageText string) (service.Suggestion, error)
}

func (m *mockResolveService) Resolve(ctx context.Context, term string) ([]service.Match, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, term)
	}
	return nil, nil
}

func (m *mockResolveService) Suggest(ctx context.Context, messageText string) (service.Suggestion, error) {
	if m.suggestFn != nil {
		return m.suggestFn(ctx, messageText)
	}
	return service.Suggestion{}, nil
}

type mockDirectoryStore struct {
	loadFn   func(ctx context.Context) (model.Directory, error)
	saveFn   func(ctx context.Context, dir model.Directory) error
	removeFn func(ctx context.Context, contactID string) error
}

func (m *mockDirectoryStore) Load(ctx context.Context) (model.Directory, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return model.Directory{}, nil
}

func (m *mockDirectoryStore) Save(ctx context.Context, dir model.Directory) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, dir)
	}
	return nil
}

func (m *mockDirectoryStore) Remove(ctx context.Context, contactID string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, contactID)
	}
	return nil
}

type staticView struct {
	dir   model.Directory
	fresh bool
}

func (v *staticView) Snapshot() (model.Directory, bool) {
	return v.dir, v.fresh
}
