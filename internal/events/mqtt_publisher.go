package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"stall-marketplace/internal/config"
	"stall-marketplace/internal/logger"
	pkgmqtt "stall-marketplace/pkg/mqtt"
)

// MQTTPublisher sends shop events to <prefix>/shops/<shopID>/<status>.
type MQTTPublisher struct {
	client *pkgmqtt.Client
	prefix string
	qos    byte
}

func NewMQTTPublisher(cfg *config.MQTTConfig) (*MQTTPublisher, error) {
	client := pkgmqtt.NewClient(&pkgmqtt.Config{
		Broker:         cfg.Broker,
		ClientID:       cfg.ClientID,
		Username:       cfg.Username,
		Password:       cfg.Password,
		CleanSession:   true,
		KeepAlive:      30,
		ConnectTimeout: 10,
		AutoReconnect:  true,
		PublishTimeout: 5 * time.Second,
	})
	if err := client.Connect(); err != nil {
		return nil, err
	}

	return &MQTTPublisher{
		client: client,
		prefix: strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:    byte(cfg.QoS),
	}, nil
}

func (p *MQTTPublisher) PublishShopEvent(_ context.Context, event ShopEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode shop event: %w", err)
	}

	topic := ShopTopic(p.prefix, event)
	if err := p.client.Publish(topic, p.qos, false, payload); err != nil {
		return fmt.Errorf("failed to publish shop event: %w", err)
	}

	logger.Debug("Shop event published",
		zap.String("topic", topic),
		zap.String("type", event.Type),
		zap.String("shop_id", event.ShopID.String()),
	)
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect()
}

// ShopTopic builds the topic an event is published on.
func ShopTopic(prefix string, event ShopEvent) string {
	return fmt.Sprintf("%s/shops/%s/%s", prefix, event.ShopID, event.Status)
}
