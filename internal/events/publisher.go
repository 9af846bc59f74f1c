package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const (
	SubjectApartmentCreated = "apartments.created"
	SubjectApartmentVoted   = "apartments.voted"
	SubjectReviewCreated    = "apartments.reviewed"
)

type ApartmentCreated struct {
	ApartmentID int    `json:"apartment_id"`
	OwnerID     int    `json:"owner_id"`
	Services    []int  `json:"services"`
	Image       string `json:"image"`
}

type ApartmentVoted struct {
	ApartmentID int `json:"apartment_id"`
}

type ReviewCreated struct {
	ApartmentID int `json:"apartment_id"`
	Days        int `json:"days"`
}

// Publisher sends domain events to NATS as JSON.
type Publisher struct {
	conn   *nats.Conn
	prefix string
}

func NewPublisher(url, prefix string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("bnbBack"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	return &Publisher{conn: conn, prefix: prefix}, nil
}

func (p *Publisher) Publish(_ context.Context, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	return p.conn.Publish(p.fullSubject(subject), data)
}

func (p *Publisher) fullSubject(subject string) string {
	if p.prefix == "" {
		return subject
	}
	return p.prefix + "." + subject
}

func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
