package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TradeState string

const (
	StateDraft           TradeState = "draft"
	StatePendingApproval TradeState = "pending_approval"
	StateNeedsReapproval TradeState = "needs_reapproval"
	StateApproved        TradeState = "approved"
	StateSent            TradeState = "sent"
	StateExecuted        TradeState = "executed"
	StateCancelled       TradeState = "cancelled"
)

func States() []TradeState {
	return []TradeState{
		StateDraft,
		StatePendingApproval,
		StateNeedsReapproval,
		StateApproved,
		StateSent,
		StateExecuted,
		StateCancelled,
	}
}

func ValidState(s TradeState) bool {
	for _, v := range States() {
		if v == s {
			return true
		}
	}
	return false
}

type TradeDirection string

const (
	DirectionBuy  TradeDirection = "buy"
	DirectionSell TradeDirection = "sell"
)

type Trade struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TradingEntity string           `gorm:"type:varchar(300);not null" json:"trading_entity"`
	Counterparty  string           `gorm:"type:varchar(300);not null" json:"counterparty"`
	Direction     TradeDirection   `gorm:"type:varchar(4);not null" json:"direction"`
	Style         string           `gorm:"type:varchar(100);not null;default:'forward'" json:"style"`
	Currency      string           `gorm:"type:varchar(3);not null" json:"currency"`
	Amount        decimal.Decimal  `gorm:"type:numeric(20,2);not null" json:"amount"`
	Underlying    []string         `gorm:"serializer:json;type:jsonb" json:"underlying"`
	TradeDate     *time.Time       `gorm:"type:timestamptz" json:"trade_date"`
	ValueDate     *time.Time       `gorm:"type:timestamptz" json:"value_date"`
	DeliveryDate  *time.Time       `gorm:"type:timestamptz" json:"delivery_date"`
	Strike        *decimal.Decimal `gorm:"type:numeric(30,6)" json:"strike"`
	State         TradeState       `gorm:"type:varchar(20);not null;default:'draft';index" json:"state"`

	// Optimistic-lock counter; bumped on every transition.
	Version int64 `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Trade) BeforeSave(tx *gorm.DB) error {
	t.NormalizeUnderlying()
	return nil
}

// NormalizeUnderlying appends the trade's own currency to the underlying
// set when absent. Invariant: underlying contains currency after any save.
func (t *Trade) NormalizeUnderlying() {
	for _, code := range t.Underlying {
		if code == t.Currency {
			return
		}
	}
	t.Underlying = append(t.Underlying, t.Currency)
}

// Snapshot renders every domain field as a flat name -> string mapping.
// Audit log entries store these snapshots verbatim; the diff engine compares
// them pairwise.
func (t *Trade) Snapshot() map[string]string {
	underlying, _ := json.Marshal(t.Underlying)
	return map[string]string{
		"id":             t.ID.String(),
		"trading_entity": t.TradingEntity,
		"counterparty":   t.Counterparty,
		"direction":      string(t.Direction),
		"style":          t.Style,
		"currency":       t.Currency,
		"amount":         t.Amount.StringFixed(2),
		"underlying":     string(underlying),
		"trade_date":     formatTimePtr(t.TradeDate),
		"value_date":     formatTimePtr(t.ValueDate),
		"delivery_date":  formatTimePtr(t.DeliveryDate),
		"strike":         formatStrike(t.Strike),
		"state":          string(t.State),
		"created_at":     t.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":     t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// SetField overwrites one named updatable field from a JSON-decoded value.
// Only business fields are settable here; lifecycle dates, state and system
// columns change exclusively through transitions. Unknown names are an error
// so that typos in a request surface instead of being dropped.
func (t *Trade) SetField(name string, value any) error {
	switch name {
	case "trading_entity":
		s, err := asString(value)
		if err != nil {
			return fmt.Errorf("trading_entity: %w", err)
		}
		t.TradingEntity = s
	case "counterparty":
		s, err := asString(value)
		if err != nil {
			return fmt.Errorf("counterparty: %w", err)
		}
		t.Counterparty = s
	case "direction":
		s, err := asString(value)
		if err != nil {
			return fmt.Errorf("direction: %w", err)
		}
		d := TradeDirection(s)
		if err := ValidateDirection(d); err != nil {
			return err
		}
		t.Direction = d
	case "style":
		s, err := asString(value)
		if err != nil {
			return fmt.Errorf("style: %w", err)
		}
		t.Style = s
	case "currency":
		s, err := asString(value)
		if err != nil {
			return fmt.Errorf("currency: %w", err)
		}
		if err := ValidateCurrency(s); err != nil {
			return err
		}
		t.Currency = s
	case "amount":
		d, err := asDecimal(value)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		t.Amount = d
	case "underlying":
		items, err := asStringList(value)
		if err != nil {
			return fmt.Errorf("underlying: %w", err)
		}
		if err := ValidateUnderlying(items); err != nil {
			return err
		}
		t.Underlying = items
	case "strike":
		d, err := asDecimal(value)
		if err != nil {
			return fmt.Errorf("strike: %w", err)
		}
		t.Strike = &d
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

func ValidateDirection(d TradeDirection) error {
	if d != DirectionBuy && d != DirectionSell {
		return fmt.Errorf("direction must be %q or %q", DirectionBuy, DirectionSell)
	}
	return nil
}

func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("currency must be a 3-letter code, got %q", code)
	}
	for i := 0; i < len(code); i++ {
		ch := code[i]
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return fmt.Errorf("currency must be a 3-letter code, got %q", code)
		}
	}
	return nil
}

func ValidateUnderlying(items []string) error {
	for _, item := range items {
		if item == "" || len(item) > 3 {
			return fmt.Errorf("underlying item %q must be 1-3 characters", item)
		}
	}
	return nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatStrike(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(6)
}

func asString(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", value)
	}
	return s, nil
}

func asDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case decimal.Decimal:
		return v, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("expected number, got %T", value)
	}
}

func asStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected list of strings, got %T element", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of strings, got %T", value)
	}
}
