package services

import (
	"context"
	"fmt"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/common"
	"github.com/hospitalapp/client-go/internal/logging"
)

// ChatService talks to the assistant endpoint.
type ChatService struct {
	api api.Client
	log logging.Logger
}

func NewChatService(client api.Client, log logging.Logger) *ChatService {
	if log == nil {
		log = logging.Nop{}
	}
	return &ChatService{api: client, log: log}
}

// Ask sends one message and returns the assistant's reply text.
func (s *ChatService) Ask(ctx context.Context, message string) (string, error) {
	outcome := s.api.Post(ctx, api.PathChat, api.Document{"message": message})

	success, ok := outcome.(api.Success)
	if !ok {
		return "", outcomeError(outcome)
	}

	doc := success.Data
	reply := doc.OptString("response", "")
	if reply == "" {
		if data := doc.Object("data"); data != nil {
			reply = data.OptString("response", data.OptString("message", ""))
		}
	}
	if reply == "" {
		return "", fmt.Errorf("%w: missing response text", common.ErrMalformedResponse)
	}
	return reply, nil
}
