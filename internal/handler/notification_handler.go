package handler

import (
	"os"
	"time"

	"mcq-writer-be/internal/pkg/logger"
	"mcq-writer-be/internal/pkg/serverutils"
	internalWS "mcq-writer-be/internal/websocket"
	"mcq-writer-be/pkg/events"
	pktNats "mcq-writer-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

type NotificationHandler struct {
	publisher *pktNats.Publisher
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewNotificationHandler(pub *pktNats.Publisher, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		publisher: pub,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs handles websocket requests from the peer. A token identifies
// the user; without one the connection attaches to the default user,
// matching the REST auth behavior.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query Param (browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	userID := serverutils.DefaultUserId
	if tokenStr != "" {
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			h.logger.Warn("NotificationHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
			return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Invalid token claims"))
		}
		if uid, ok := claims["user_id"].(string); ok && uid != "" {
			userID = uid
		}
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// Broadcast sends a system-wide notification through the event bus.
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	type Request struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.Title == "" || req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Title and Message are required")
	}

	evt := events.BaseEvent{
		Type: "SYSTEM_BROADCAST",
		Data: map[string]interface{}{
			"title":   req.Title,
			"message": req.Message,
		},
		OccurredAt: time.Now(),
	}

	if h.publisher != nil {
		if err := h.publisher.Publish(c.UserContext(), evt); err != nil {
			return err
		}
	}

	return c.JSON(serverutils.SuccessResponse("Broadcast queued", nil))
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notifications")
	notif.Use(serverutils.AuthMiddleware)
	notif.Post("/broadcast", h.Broadcast)

	// WebSocket
	router.Get("/ws", h.ServeWs)
}
