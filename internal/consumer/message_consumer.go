package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Eursukkul/restaurant-ledger/internal/channel"
	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	inboundPrefix  = "inbound."
	outboundPrefix = "outbound."
	commandPrefix  = "command."
)

const (
	CommandReservationCreate = "reservation.create"
	CommandReservationCancel = "reservation.cancel"
	CommandOrderCreate       = "order.create"
	CommandOrderStatus       = "order.status"
)

type Publisher interface {
	Publish(routingKey string, payload any) error
	Reply(replyTo, correlationID string, payload any) error
}

type statusCommand struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// MessageConsumer answers platform messages and executes ledger commands
// delivered over RabbitMQ.
type MessageConsumer struct {
	reservations service.ReservationService
	orders       service.OrderService
	responder    channel.Responder
	formatter    channel.Formatter
	publisher    Publisher
	now          func() time.Time
}

func NewMessageConsumer(
	reservations service.ReservationService,
	orders service.OrderService,
	responder channel.Responder,
	formatter channel.Formatter,
	publisher Publisher,
) *MessageConsumer {
	if responder == nil {
		responder = channel.EchoResponder{}
	}
	return &MessageConsumer{
		reservations: reservations,
		orders:       orders,
		responder:    responder,
		formatter:    formatter,
		publisher:    publisher,
		now:          time.Now,
	}
}

// Start processes deliveries until msgs is closed or ctx is done.
func (mc *MessageConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Println("[MessageConsumer] context done, stopping consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Println("[MessageConsumer] channel closed, stopping consumer")
					return
				}
				mc.handleMessage(ctx, msg)
			}
		}
	}()
}

func (mc *MessageConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	switch {
	case strings.HasPrefix(msg.RoutingKey, inboundPrefix):
		mc.handleInbound(ctx, msg)
	case strings.HasPrefix(msg.RoutingKey, commandPrefix):
		mc.handleCommand(ctx, msg)
	default:
		log.Printf("[MessageConsumer] unexpected routing key %q", msg.RoutingKey)
		msg.Nack(false, false)
	}
}

func (mc *MessageConsumer) handleInbound(ctx context.Context, msg amqp.Delivery) {
	c, err := channel.Parse(strings.TrimPrefix(msg.RoutingKey, inboundPrefix))
	if err != nil {
		log.Printf("[MessageConsumer] %v", err)
		msg.Nack(false, false)
		return
	}

	now := mc.now()
	unified, err := channel.Standardize(c, msg.Body, now)
	if err != nil {
		log.Printf("[MessageConsumer] failed to standardize %s message: %v", c, err)
		msg.Nack(false, false)
		return
	}

	text, err := mc.responder.Respond(ctx, unified)
	if err != nil {
		log.Printf("[MessageConsumer] responder failed for %s/%s: %v", c, unified.UserID, err)
		retry(msg)
		return
	}

	reply, err := mc.formatter.FormatReply(c, unified.UserID, text, now)
	if err != nil {
		log.Printf("[MessageConsumer] failed to format %s reply: %v", c, err)
		msg.Nack(false, false)
		return
	}
	if err := mc.publisher.Publish(outboundPrefix+string(c), reply); err != nil {
		log.Printf("[MessageConsumer] failed to publish %s reply: %v", c, err)
		retry(msg)
		return
	}

	log.Printf("[MessageConsumer] answered %s message from %s", c, unified.UserID)
	msg.Ack(false)
}

func (mc *MessageConsumer) handleCommand(ctx context.Context, msg amqp.Delivery) {
	command := strings.TrimPrefix(msg.RoutingKey, commandPrefix)

	result, message, err := mc.execute(ctx, command, msg.Body)
	var decodeErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		mc.reply(msg, dto.OK(result, message))
		log.Printf("[MessageConsumer] %s: %s", command, message)
		msg.Ack(false)
	case errors.As(err, &decodeErr), errors.As(err, &typeErr), errors.Is(err, errUnknownCommand):
		log.Printf("[MessageConsumer] rejected %s: %v", command, err)
		mc.reply(msg, dto.Failure(err.Error()))
		msg.Nack(false, false)
	case errors.Is(err, service.ErrStoreFailure) && !msg.Redelivered:
		log.Printf("[MessageConsumer] %s failed, requeueing: %v", command, err)
		msg.Nack(false, true)
	case errors.Is(err, service.ErrStoreFailure):
		log.Printf("[MessageConsumer] %s failed after redelivery: %v", command, err)
		mc.reply(msg, dto.Failure(err.Error()))
		msg.Nack(false, false)
	default:
		log.Printf("[MessageConsumer] %s refused: %v", command, err)
		mc.reply(msg, dto.Failure(err.Error()))
		msg.Ack(false)
	}
}

var errUnknownCommand = errors.New("unknown command")

func (mc *MessageConsumer) execute(ctx context.Context, command string, body []byte) (any, string, error) {
	switch command {
	case CommandReservationCreate:
		var in service.CreateReservationInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, "", err
		}
		res, err := mc.reservations.Create(ctx, in)
		if err != nil {
			return nil, "", err
		}
		return res, "reservation " + res.ID + " confirmed", nil
	case CommandReservationCancel:
		var in statusCommand
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, "", err
		}
		change, err := mc.reservations.Cancel(ctx, in.ID)
		if err != nil {
			return nil, "", err
		}
		return change, "reservation " + change.ID + " cancelled", nil
	case CommandOrderCreate:
		var in service.CreateOrderInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, "", err
		}
		order, err := mc.orders.Create(ctx, in)
		if err != nil {
			return nil, "", err
		}
		return order, "order " + order.ID + " created", nil
	case CommandOrderStatus:
		var in statusCommand
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, "", err
		}
		change, err := mc.orders.SetStatus(ctx, in.ID, in.Status)
		if err != nil {
			return nil, "", err
		}
		return change, "order " + change.ID + " is now " + change.Status, nil
	default:
		return nil, "", fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func (mc *MessageConsumer) reply(msg amqp.Delivery, env dto.Envelope) {
	if msg.ReplyTo == "" {
		return
	}
	if err := mc.publisher.Reply(msg.ReplyTo, msg.CorrelationId, env); err != nil {
		log.Printf("[MessageConsumer] failed to reply to %s: %v", msg.ReplyTo, err)
	}
}

// retry requeues a delivery once; a second failure drops it.
func retry(msg amqp.Delivery) {
	msg.Nack(false, !msg.Redelivered)
}
