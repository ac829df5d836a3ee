package notify

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/leeder-app/leeder-api/internal/utils"
)

// WebSocketHandler keeps a notification socket open for the signed-in
// user. Authentication is via ?token= (the JWT from the session cookie),
// since websocket upgrades skip the cookie middleware chain.
func WebSocketHandler(hub *Hub, jwtSecret string) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			log.Println("WebSocket: token parameter missing")
			c.Close()
			return
		}

		token, err := jwt.ParseWithClaims(tokenStr, &utils.Claims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Println("WebSocket: invalid token:", err)
			c.Close()
			return
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			c.Close()
			return
		}

		userUUID, err := uuid.Parse(claims.UserID)
		if err != nil {
			log.Println("WebSocket: invalid user id in token:", err)
			c.Close()
			return
		}

		client := &Client{
			ID:     uuid.New().String(),
			UserID: userUUID,
			Send:   make(chan []byte, 256),
		}

		hub.RegisterClient(client)
		defer func() {
			hub.UnregisterClient(client)
			log.Printf("WebSocket: user %s disconnected\n", userUUID)
		}()

		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("WebSocket write error:", err)
					return
				}
			}
		}()

		// Read loop keeps the connection alive; clients only send pongs.
		for {
			var payload map[string]interface{}
			if err := c.ReadJSON(&payload); err != nil {
				break
			}
		}
	}
}
