package queues

import (
	"math"
	"time"

	"foreign-call-resolver/src/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitmqExchangeType string

const (
	ExchangeFanout  RabbitmqExchangeType = "fanout"
	ExchangeDirect  RabbitmqExchangeType = "direct"
	ExchangeTopic   RabbitmqExchangeType = "topic"
	ExchangeHeaders RabbitmqExchangeType = "headers"
)

// ConnectToRabbitmq dials the broker with exponential backoff. The broker
// usually comes up slower than the resolver in a compose setup.
func ConnectToRabbitmq(url string) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 7
	waitTime := 1 * time.Second

	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}

		time.Sleep(waitTime)
		waitTime = time.Duration(math.Pow(2, float64(i+1))) * time.Second
	}

	return nil, err
}

func CreateNewExchange(ch *amqp.Channel, exchangeName string, exchangeType RabbitmqExchangeType) error {
	return ch.ExchangeDeclare(
		exchangeName,         // name
		string(exchangeType), // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
}

type Publisher interface {
	Publish(body utils.Serializable) error
}

type RabbitmqPublisher struct {
	Channel    *amqp.Channel
	Exchange   string
	RoutingKey string
}

func NewPublisher(ch *amqp.Channel, exchange, routingKey string) *RabbitmqPublisher {
	return &RabbitmqPublisher{
		Channel:    ch,
		Exchange:   exchange,
		RoutingKey: routingKey,
	}
}

func (rp *RabbitmqPublisher) Publish(body utils.Serializable) error {
	payload, err := body.Serialize()
	if err != nil {
		return err
	}

	return rp.Channel.Publish(
		rp.Exchange,
		rp.RoutingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}
