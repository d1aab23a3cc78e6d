package model

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionModel mirrors the 'subscriptions' table. The composite unique
// index enforces at most one edge per (subscriber, channel) pair.
type SubscriptionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair,priority:1"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair,priority:2;index"`
	CreatedAt    time.Time

	Subscriber *UserModel `gorm:"foreignKey:SubscriberID"`
	Channel    *UserModel `gorm:"foreignKey:ChannelID"`
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToEntity converts the GORM model to a domain entity.
func (m *SubscriptionModel) ToEntity() *entity.Subscription {
	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
	}
}

// SubscriptionModelFromEntity converts a domain entity to the GORM model.
func SubscriptionModelFromEntity(sub *entity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:           sub.ID,
		SubscriberID: sub.SubscriberID,
		ChannelID:    sub.ChannelID,
		CreatedAt:    sub.CreatedAt,
	}
}
