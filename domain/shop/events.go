package shop

import "time"

type ShopRegisteredEvent struct {
	shopID     string
	name       string
	ownerID    string
	occurredOn time.Time
}

func NewShopRegisteredEvent(shopID, name, ownerID string) *ShopRegisteredEvent {
	return &ShopRegisteredEvent{shopID: shopID, name: name, ownerID: ownerID, occurredOn: time.Now()}
}

func (e *ShopRegisteredEvent) EventName() string      { return "shop.registered" }
func (e *ShopRegisteredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShopRegisteredEvent) GetAggregateID() string { return e.shopID }
func (e *ShopRegisteredEvent) ShopID() string         { return e.shopID }
func (e *ShopRegisteredEvent) Name() string           { return e.name }
func (e *ShopRegisteredEvent) OwnerID() string        { return e.ownerID }

type ShopApprovedEvent struct {
	shopID     string
	ownerID    string
	reviewerID string
	occurredOn time.Time
}

func NewShopApprovedEvent(shopID, ownerID, reviewerID string) *ShopApprovedEvent {
	return &ShopApprovedEvent{shopID: shopID, ownerID: ownerID, reviewerID: reviewerID, occurredOn: time.Now()}
}

func (e *ShopApprovedEvent) EventName() string      { return "shop.approved" }
func (e *ShopApprovedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShopApprovedEvent) GetAggregateID() string { return e.shopID }
func (e *ShopApprovedEvent) ShopID() string         { return e.shopID }
func (e *ShopApprovedEvent) OwnerID() string        { return e.ownerID }
func (e *ShopApprovedEvent) ReviewerID() string     { return e.reviewerID }

type ShopRejectedEvent struct {
	shopID     string
	ownerID    string
	reviewerID string
	note       string
	occurredOn time.Time
}

func NewShopRejectedEvent(shopID, ownerID, reviewerID, note string) *ShopRejectedEvent {
	return &ShopRejectedEvent{shopID: shopID, ownerID: ownerID, reviewerID: reviewerID, note: note, occurredOn: time.Now()}
}

func (e *ShopRejectedEvent) EventName() string      { return "shop.rejected" }
func (e *ShopRejectedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShopRejectedEvent) GetAggregateID() string { return e.shopID }
func (e *ShopRejectedEvent) ShopID() string         { return e.shopID }
func (e *ShopRejectedEvent) OwnerID() string        { return e.ownerID }
func (e *ShopRejectedEvent) ReviewerID() string     { return e.reviewerID }
func (e *ShopRejectedEvent) Note() string           { return e.note }

type ShopInfoRequestedEvent struct {
	shopID     string
	ownerID    string
	reviewerID string
	note       string
	occurredOn time.Time
}

func NewShopInfoRequestedEvent(shopID, ownerID, reviewerID, note string) *ShopInfoRequestedEvent {
	return &ShopInfoRequestedEvent{shopID: shopID, ownerID: ownerID, reviewerID: reviewerID, note: note, occurredOn: time.Now()}
}

func (e *ShopInfoRequestedEvent) EventName() string      { return "shop.info_requested" }
func (e *ShopInfoRequestedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ShopInfoRequestedEvent) GetAggregateID() string { return e.shopID }
func (e *ShopInfoRequestedEvent) ShopID() string         { return e.shopID }
func (e *ShopInfoRequestedEvent) OwnerID() string        { return e.ownerID }
func (e *ShopInfoRequestedEvent) ReviewerID() string     { return e.reviewerID }
func (e *ShopInfoRequestedEvent) Note() string           { return e.note }
