package feed

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"roulette_client/internal/config"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// reconnectDelay Пауза перед переподключением к брокеру
const reconnectDelay = 3 * time.Second

// Ключи маршрутизации ленты изменений
const (
	topicRound   = "round"
	topicBet     = "bet"
	topicBalance = "balance"
)

// Handler Получатель событий ленты. Лента at-least-once и без гарантии
// порядка, поэтому события только триггерят перечитывание состояния,
// а не несут его сами
type Handler interface {
	OnRoundEvent(ctx context.Context)
	OnBetEvent(ctx context.Context)
	OnBalanceEvent(ctx context.Context)
}

// Consumer Подписчик на ленту изменений движка через rabbitmq
type Consumer struct {
	cfg     config.FeedConfig
	handler Handler
	log     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConsumer Создать подписчика
func NewConsumer(cfg config.FeedConfig, handler Handler, log *zap.Logger) *Consumer {
	return &Consumer{
		cfg:     cfg,
		handler: handler,
		log:     log,
	}
}

// Start Запускает цикл потребления с переподключением
func (c *Consumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go c.run(ctx)
}

// Stop Останавливает потребление
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

func (c *Consumer) run(ctx context.Context) {
	defer c.wg.Done()

	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		// Потеря ленты не фатальна: опрос продолжает работать,
		// лента только ускоряет реакцию
		c.log.Warn("feed connection lost, reconnecting", zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// consume Одна сессия подключения: объявляем топик-обменник, вешаем
// очередь на ключи round/bet/balance и раздаем события обработчику
func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL())
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		c.cfg.Exchange(), // имя обменника
		"topic",          // тип
		true,             // durable
		false,            // автоудаление
		false,            // внутренний
		false,            // без ожидания
		nil,              // аргументы
	)
	if err != nil {
		return err
	}

	queue, err := ch.QueueDeclare(
		c.cfg.Queue(), // имя очереди
		false,         // durable
		true,          // автоудаление
		false,         // эксклюзивная
		false,         // без ожидания
		nil,           // аргументы
	)
	if err != nil {
		return err
	}

	for _, key := range []string{topicRound + ".*", topicBet + ".*", topicBalance + ".*"} {
		if err := ch.QueueBind(queue.Name, key, c.cfg.Exchange(), false, nil); err != nil {
			return err
		}
	}

	// autoAck: событие — только сигнал перечитать, терять его не страшно
	deliveries, err := ch.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	c.log.Info("feed connected", zap.String("exchange", c.cfg.Exchange()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-closed:
			if amqpErr == nil {
				return errors.New("feed connection closed")
			}
			return amqpErr
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("feed channel closed")
			}
			c.dispatch(ctx, delivery.RoutingKey)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, routingKey string) {
	topic, _, _ := strings.Cut(routingKey, ".")
	switch topic {
	case topicRound:
		c.handler.OnRoundEvent(ctx)
	case topicBet:
		c.handler.OnBetEvent(ctx)
	case topicBalance:
		c.handler.OnBalanceEvent(ctx)
	default:
		c.log.Debug("unknown feed event", zap.String("routing_key", routingKey))
	}
}
