package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionCancel  Action = "cancel"
	ActionUpdate  Action = "update"
	ActionSend    Action = "send"
	ActionBook    Action = "book"
)

func Actions() []Action {
	return []Action{
		ActionSubmit,
		ActionApprove,
		ActionCancel,
		ActionUpdate,
		ActionSend,
		ActionBook,
	}
}

func ValidAction(a Action) bool {
	for _, v := range Actions() {
		if v == a {
			return true
		}
	}
	return false
}

// TradeLog is the append-only audit record of one transition. Entries are
// never mutated or deleted; they cascade with their trade.
type TradeLog struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TradeID uuid.UUID `gorm:"type:uuid;not null;index" json:"trade_id"`
	Trade   *Trade    `gorm:"foreignKey:TradeID;constraint:OnDelete:CASCADE" json:"-"`

	ActorID uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`
	Action  Action    `gorm:"type:varchar(10);not null" json:"action"`

	BeforeState datatypes.JSON `gorm:"type:jsonb;not null" json:"before_state"`
	AfterState  datatypes.JSON `gorm:"type:jsonb;not null" json:"after_state"`
	Diff        datatypes.JSON `gorm:"type:jsonb;not null" json:"diff"`

	Timestamp time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"timestamp"`
}

func (TradeLog) TableName() string {
	return "trade_logs"
}

func (l *TradeLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
