package po

import (
	"encoding/json"
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO Outbox event persistence object.
// Implements the transactional outbox pattern: events are committed in the
// same transaction as the aggregate change and relayed by the worker.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`          // e.g. "order.placed", "wallet.frozen"
	Payload     string    `gorm:"type:json;not null"`               // JSON serialized event data
	Status      string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum.
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent Convert domain event to outbox persistence object.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// serializeEventToJSON builds the wire payload. Events expose their data
// through getters, so the serializer probes the getters each event family
// shares instead of switching on concrete types.
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]interface{}{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	if g, ok := event.(interface{ OrderID() string }); ok {
		eventData["order_id"] = g.OrderID()
	}
	if g, ok := event.(interface{ WalletID() string }); ok {
		eventData["wallet_id"] = g.WalletID()
	}
	if g, ok := event.(interface{ ShopID() string }); ok {
		eventData["shop_id"] = g.ShopID()
	}
	if g, ok := event.(interface{ BuyerID() string }); ok {
		eventData["buyer_id"] = g.BuyerID()
	}
	if g, ok := event.(interface{ SellerID() string }); ok {
		eventData["seller_id"] = g.SellerID()
	}
	if g, ok := event.(interface{ OwnerID() string }); ok {
		eventData["owner_id"] = g.OwnerID()
	}
	if g, ok := event.(interface{ ActorID() string }); ok {
		eventData["actor_id"] = g.ActorID()
	}
	if g, ok := event.(interface{ DeliveryPersonID() string }); ok {
		eventData["delivery_person_id"] = g.DeliveryPersonID()
	}
	if g, ok := event.(interface{ Amount() shared.Money }); ok {
		money := g.Amount()
		eventData["amount"] = money.Amount()
		eventData["currency"] = money.Currency()
	}
	if g, ok := event.(interface{ Total() shared.Money }); ok {
		money := g.Total()
		eventData["total"] = money.Amount()
		eventData["total_currency"] = money.Currency()
	}
	if g, ok := event.(interface{ Reason() string }); ok {
		eventData["reason"] = g.Reason()
	}
	if g, ok := event.(interface{ Note() string }); ok {
		eventData["note"] = g.Note()
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ToEventData Extract event data from outbox PO (for debugging/testing).
func (po *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
