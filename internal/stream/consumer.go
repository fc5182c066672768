package stream

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/models"
)

// Filter is the pipeline boundary the consumer feeds.
type Filter interface {
	FilterBatch(ctx context.Context, posts []models.Post) (passed, filtered []models.Post)
}

// Sink receives the partitions of each consumed batch, typically a storage
// layer or a downstream producer.
type Sink interface {
	HandleResults(ctx context.Context, passed, filtered []models.Post) error
}

// readCount is how many stream messages one filter batch pulls at most.
const readCount = 10

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	filter       Filter
	sink         Sink
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *StreamConfig, filter Filter, sink Sink, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		filter:       filter,
		sink:         sink,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    readCount,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		c.process(ctx, msgs[0].Messages)
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

// process decodes a read's messages into posts, filters them as one batch and
// acks everything. Malformed messages are acked and skipped so they never
// wedge the group.
func (c *Consumer) process(ctx context.Context, msgs []redis.XMessage) {
	var posts []models.Post
	var ids []string

	for _, msg := range msgs {
		payload, ok := msg.Values["payload"].(string)
		if !ok {
			c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
			c.ack(ctx, msg.ID)
			continue
		}

		var post models.Post
		if err := json.Unmarshal([]byte(payload), &post); err != nil {
			c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
			c.ack(ctx, msg.ID) // bad message — ACK to skip it
			continue
		}

		posts = append(posts, post)
		ids = append(ids, msg.ID)
	}

	if len(posts) == 0 {
		return
	}

	passed, filtered := c.filter.FilterBatch(ctx, posts)

	c.logger.Info().
		Int("consumed", len(posts)).
		Int("passed", len(passed)).
		Int("filtered", len(filtered)).
		Msg("Batch filtered")

	if c.sink != nil {
		if err := c.sink.HandleResults(ctx, passed, filtered); err != nil {
			c.logger.Error().Err(err).Msg("Failed to hand off results")
		}
	}

	for _, id := range ids {
		c.ack(ctx, id)
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ack message")
	}
}
