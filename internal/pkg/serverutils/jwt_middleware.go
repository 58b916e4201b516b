package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultUserId identifies anonymous callers. Auth is optional: without
// a token all work is attributed to this shared user.
const DefaultUserId = "default"

// AuthMiddleware resolves the caller identity. A valid bearer token sets
// user_id from its claims; no token falls back to the default user; a
// malformed or expired token is rejected.
func AuthMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		ctx.Locals("user_id", DefaultUserId)
		return ctx.Next()
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Malformed authorization header"))
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid claims"))
	}

	userId, _ := claims["user_id"].(string)
	if userId == "" {
		userId = DefaultUserId
	}
	ctx.Locals("user_id", userId)
	return ctx.Next()
}
