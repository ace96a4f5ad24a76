// Package events publishes audit events for accepted votes and ended
// elections. Publishing is best-effort and happens after the engine has
// committed; the ledger, not the event stream, is authoritative.
package events

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"election-service/internal/ports/models"

	"github.com/segmentio/kafka-go"
)

const (
	TypeVoteCast      = "vote_cast"
	TypeElectionEnded = "election_ended"
)

// Envelope is the wire format for all audit events.
type Envelope struct {
	Type       string `json:"type"`
	ElectionID uint   `json:"electionId"`
	OccurredAt int64  `json:"occurredAt"`

	// vote_cast only
	VoteID       string `json:"voteId,omitempty"`
	CandidateID  uint   `json:"candidateId,omitempty"`
	VoterAddress string `json:"voterAddress,omitempty"`
}

// Publisher writes audit events to Kafka, keyed by election id so one
// election's events stay ordered within a partition. A nil Publisher
// drops everything, which keeps the transport layer free of broker
// checks.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   topic,
		}),
	}
}

func (p *Publisher) PublishVoteCast(ctx context.Context, vote *models.Vote) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, Envelope{
		Type:         TypeVoteCast,
		ElectionID:   vote.ElectionID,
		OccurredAt:   vote.CastAt,
		VoteID:       vote.ID,
		CandidateID:  vote.CandidateID,
		VoterAddress: vote.VoterAddress,
	})
}

func (p *Publisher) PublishElectionEnded(ctx context.Context, electionID uint, now int64) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, Envelope{
		Type:       TypeElectionEnded,
		ElectionID: electionID,
		OccurredAt: now,
	})
}

func (p *Publisher) publish(ctx context.Context, envelope Envelope) error {
	value, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   messageKey(envelope.ElectionID),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

func messageKey(electionID uint) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(electionID))
	return key
}
