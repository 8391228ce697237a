// Package events publishes domain events to NATS. Publishing is optional
// and best-effort: a nil publisher is a no-op, and publish failures are
// logged and counted, never propagated to the caller.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/pkg/logger"
	"github.com/clawsandpaws/pawsd/pkg/metrics"
	"github.com/nats-io/nats.go"
)

// Subjects emitted by the service.
const (
	SubjectPostCreated    = "post.created"
	SubjectVoteRecorded   = "vote.recorded"
	SubjectWinnerArchived = "winner.archived"
)

// Connection defaults.
const (
	defaultMaxReconnects = 5
	defaultReconnectWait = 2 * time.Second
)

// PostCreatedEvent is the payload for SubjectPostCreated.
type PostCreatedEvent struct {
	PostID    string     `json:"postId"`
	Team      model.Team `json:"team"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// VoteRecordedEvent is the payload for SubjectVoteRecorded.
type VoteRecordedEvent struct {
	UserID string `json:"userId"`
	PostID string `json:"postId"`
	Date   string `json:"date"`
}

// WinnerArchivedEvent is the payload for SubjectWinnerArchived.
type WinnerArchivedEvent struct {
	PostID       string     `json:"postId"`
	Team         model.Team `json:"team"`
	PeriodStart  time.Time  `json:"periodStart"`
	PeriodEnd    time.Time  `json:"periodEnd"`
	LikesAtClose int        `json:"likesAtClose"`
}

// Publisher emits domain events on a NATS connection.
type Publisher struct {
	conn *nats.Conn
	log  logger.Logger
}

// Connect dials NATS at url and returns a Publisher over the connection.
func Connect(url string, log logger.Logger) (*Publisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	opts := []nats.Option{
		nats.MaxReconnects(defaultMaxReconnects),
		nats.ReconnectWait(defaultReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn(context.Background(), "nats disconnected", logger.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info(context.Background(), "nats reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, log: log}, nil
}

// Close drains the connection. Safe on a nil publisher.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

// PostCreated publishes a post.created event.
func (p *Publisher) PostCreated(ctx context.Context, post model.Post) {
	p.publish(ctx, SubjectPostCreated, PostCreatedEvent{
		PostID:    post.ID,
		Team:      post.Team,
		Author:    post.Author,
		CreatedAt: post.CreatedAt,
	})
}

// VoteRecorded publishes a vote.recorded event.
func (p *Publisher) VoteRecorded(ctx context.Context, userID, postID, date string) {
	p.publish(ctx, SubjectVoteRecorded, VoteRecordedEvent{
		UserID: userID,
		PostID: postID,
		Date:   date,
	})
}

// WinnerArchived publishes a winner.archived event.
func (p *Publisher) WinnerArchived(ctx context.Context, w model.Winner) {
	p.publish(ctx, SubjectWinnerArchived, WinnerArchivedEvent{
		PostID:       w.PostID,
		Team:         w.Team,
		PeriodStart:  w.PeriodStart,
		PeriodEnd:    w.PeriodEnd,
		LikesAtClose: w.LikesAtClose,
	})
}

func (p *Publisher) publish(ctx context.Context, subject string, payload any) {
	if p == nil || p.conn == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn(ctx, "marshal event failed", logger.String("subject", subject), logger.Error(err))
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		metrics.RecordCollaboratorFailure("broker")
		p.log.Warn(ctx, "publish event failed", logger.String("subject", subject), logger.Error(err))
	}
}
