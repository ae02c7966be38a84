package handler

import (
	"context"
	"encoding/json"

	"restaurant_manager/config"
	"restaurant_manager/logger"
	"restaurant_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const orderEventsChannel = "orders:events"

var redisClient *redis.Client

// InitRedis connects the pub/sub client used for the live order feed.
func InitRedis() {
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})
}

// PublishOrderEvent fans an order status change out to connected kitchen
// displays. Publishing is best-effort; order handling never fails on it.
func PublishOrderEvent(event model.OrderEvent) {
	if redisClient == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := redisClient.Publish(context.Background(), orderEventsChannel, payload).Err(); err != nil {
		logger.Log.Error("publish order event: " + err.Error())
	}
}

// OrderFeed streams order events to one websocket client until it disconnects.
func OrderFeed(c *websocket.Conn) {
	defer c.Close()

	if redisClient == nil {
		return
	}
	pubsub := redisClient.Subscribe(context.Background(), orderEventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
