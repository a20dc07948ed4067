package env

import (
	"errors"
	"os"

	"roulette_client/internal/config"
)

const (
	feedURLEnvName      = "AMQP_URL"
	feedExchangeEnvName = "FEED_EXCHANGE"
	feedQueueEnvName    = "FEED_QUEUE"

	defaultFeedExchange = "roulette.changes"
	defaultFeedQueue    = "roulette.client"
)

type feedConfig struct {
	url      string
	exchange string
	queue    string
}

func NewFeedConfig() (config.FeedConfig, error) {
	url := os.Getenv(feedURLEnvName)
	if len(url) == 0 {
		return nil, errors.New("amqp url not found")
	}

	exchange := os.Getenv(feedExchangeEnvName)
	if len(exchange) == 0 {
		exchange = defaultFeedExchange
	}

	queue := os.Getenv(feedQueueEnvName)
	if len(queue) == 0 {
		queue = defaultFeedQueue
	}

	return &feedConfig{
		url:      url,
		exchange: exchange,
		queue:    queue,
	}, nil
}

func (cfg *feedConfig) URL() string {
	return cfg.url
}

func (cfg *feedConfig) Exchange() string {
	return cfg.exchange
}

func (cfg *feedConfig) Queue() string {
	return cfg.queue
}
