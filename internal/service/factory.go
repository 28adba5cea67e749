package service

import (
	"chatops.app/courier/common/llm"
	"chatops.app/courier/internal/store"
)

// Services bundles the constructed service layer for injection into the HTTP
// surface.
type Services struct {
	imports ImportService
	chat    ChatService
	resolve ResolveService
}

type ServicesConfig struct {
	Directory     store.DirectoryStore
	Conversations store.ConversationStore
	LLM           llm.Client // nil when the resolver is not configured
	Resolve       ResolveConfig
}

func NewServices(cfg ServicesConfig) *Services {
	s := &Services{
		imports: NewImportService(cfg.Directory),
		chat:    NewChatService(cfg.Conversations),
	}
	if cfg.LLM != nil {
		s.resolve = NewResolveService(cfg.LLM, cfg.Directory, cfg.Resolve)
	}
	return s
}

func (s *Services) Imports() ImportService { return s.imports }
func (s *Services) Chat() ChatService { return s.chat }
func (s *Services) Resolve() ResolveService { return s.resolve }
