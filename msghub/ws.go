package msghub

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyLimit = 30

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type inboundPayload struct {
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
}

type outboundPayload struct {
	Action         string `json:"action"`
	ID             string `json:"id"`
	ConversationID string `json:"conversationId,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
	Content        string `json:"content,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// roomMember reports whether a user belongs to a conversation room. Room IDs
// are the sorted participant pair joined with ":".
func roomMember(userID, room string) bool {
	for _, p := range strings.Split(room, ":") {
		if p == userID {
			return true
		}
	}
	return false
}

// WebSocketHandler upgrades a client into a conversation room. The token
// rides in ?token= because browsers cannot set headers on websocket dials.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := middleware.ParseToken(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		room := ps.ByName("id")
		if !roomMember(claims.UserID, room) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("msghub upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   room,
			UserID: claims.UserID,
		}

		go replayHistory(client, room)

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

// replayHistory sends the room's most recent messages, oldest first.
func replayHistory(client *Client, room string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	participants := strings.Split(room, ":")
	if len(participants) != 2 {
		return
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(historyLimit)
	cur, err := db.MessagesCollection.Find(ctx, bson.M{
		"senderId":    bson.M{"$in": participants},
		"recipientId": bson.M{"$in": participants},
	}, opts)
	if err != nil {
		log.Println("msghub history find:", err)
		return
	}
	defer cur.Close(ctx)

	var history []models.Message
	if err := cur.All(ctx, &history); err != nil {
		log.Println("msghub history decode:", err)
		return
	}
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		out := outboundPayload{
			Action:         "chat",
			ID:             m.MessageID,
			ConversationID: room,
			SenderID:       m.SenderID,
			Content:        m.Content,
			Timestamp:      m.CreatedAt.Unix(),
		}
		if data, err := json.Marshal(out); err == nil {
			select {
			case client.Send <- data:
			default:
				return
			}
		}
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("msghub invalid payload:", err)
			continue
		}
		if in.Action != "chat" || in.Content == "" {
			continue
		}
		if hub.Persist == nil {
			continue
		}

		msg, err := hub.Persist(context.Background(), c.UserID, c.Room, in.Content)
		if err != nil {
			log.Println("msghub persist:", err)
			continue
		}
		out := outboundPayload{
			Action:         "chat",
			ID:             msg.MessageID,
			ConversationID: c.Room,
			SenderID:       msg.SenderID,
			Content:        msg.Content,
			Timestamp:      msg.CreatedAt.Unix(),
		}
		if data, _ := json.Marshal(out); data != nil {
			hub.Broadcast(c.Room, data)
		}
	}
}
