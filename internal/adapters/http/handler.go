package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/selimk/drivefeed/internal/config"
	"github.com/selimk/drivefeed/internal/core/domain"
	"github.com/selimk/drivefeed/internal/core/ports"
)

// channelTokenHeader is set by Drive on every push notification, echoing
// the token given at watch registration.
const channelTokenHeader = "X-Goog-Channel-Token"

type SyncHandler struct {
	service ports.SyncService
	state   ports.StateStore
	cfg     config.Config
	log     *zap.SugaredLogger
}

func NewSyncHandler(service ports.SyncService, state ports.StateStore, cfg config.Config, log *zap.SugaredLogger) *SyncHandler {
	return &SyncHandler{service: service, state: state, cfg: cfg, log: log}
}

// Health is the liveness endpoint.
func (h *SyncHandler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// Info reports the effective configuration and the stored cursor. Secrets
// are reported as booleans only.
func (h *SyncHandler) Info(c *fiber.Ctx) error {
	var targetFolder any
	if h.cfg.TargetFolderID != "" {
		targetFolder = h.cfg.TargetFolderID
	}
	info := fiber.Map{
		"project":           h.cfg.ProjectID,
		"webhook_url":       h.cfg.WebhookURL,
		"has_dify_key":      h.cfg.DifyAPIKey != "",
		"has_dataset_id":    h.cfg.DifyDatasetID != "",
		"channel_token_set": h.cfg.ChannelToken != "",
		"target_folder_id":  targetFolder,
	}

	st, err := h.state.Load(c.Context())
	if err != nil {
		h.log.Errorw("reading sync state failed", "error", err)
		info["error"] = err.Error()
		return c.Status(fiber.StatusInternalServerError).JSON(info)
	}
	info["stored_page_token"] = st.PageToken
	return c.JSON(info)
}

// Pull manually runs one change-processing pass from the stored cursor.
func (h *SyncHandler) Pull(c *fiber.Ctx) error {
	if err := h.service.Pull(c.Context()); err != nil {
		if errors.Is(err, domain.ErrNoPageToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		}
		h.log.Errorw("manual pull failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Init bootstraps the Drive watch channel and stores the start cursor.
func (h *SyncHandler) Init(c *fiber.Ctx) error {
	channelID, startToken, err := h.service.InitWatch(c.Context())
	if err != nil {
		h.log.Errorw("init failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"ok":             true,
		"channel_id":     channelID,
		"startPageToken": startToken,
	})
}

// Webhook handles Drive push notifications. The channel token must match,
// otherwise the request is rejected before touching any backend.
func (h *SyncHandler) Webhook(c *fiber.Ctx) error {
	h.log.Infow("drive webhook called")
	if c.Get(channelTokenHeader) != h.cfg.ChannelToken {
		h.log.Warnw("channel token mismatch")
		return c.SendStatus(fiber.StatusForbidden)
	}

	if err := h.service.Pull(c.Context()); err != nil {
		h.log.Errorw("webhook processing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
