package handler

import (
	"context"
	"encoding/json"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"

	"github.com/strand-dev/strand/internal/config"
	"github.com/strand-dev/strand/internal/logger"
	"github.com/strand-dev/strand/internal/service"
)

// Pinger reports whether the backing store can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	thread     service.ThreadService
	feed       service.FeedService
	engagement service.EngagementService
	user       service.UserService
	community  service.CommunityService
	health     Pinger
	cfg        *config.Config
	webhook    *svix.Webhook
}

func New(
	thread service.ThreadService,
	feed service.FeedService,
	engagement service.EngagementService,
	user service.UserService,
	community service.CommunityService,
	health Pinger,
	cfg *config.Config,
) (*Handler, error) {
	wh, err := svix.NewWebhook(cfg.WebhookSecret())
	if err != nil {
		return nil, err
	}
	return &Handler{
		thread:     thread,
		feed:       feed,
		engagement: engagement,
		user:       user,
		community:  community,
		health:     health,
		cfg:        cfg,
		webhook:    wh,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("Failed to encode response", "error", err.Error())
	}
}
