package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// accepted order_time layouts, tried in order
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// OrderMessage is the JSON payload of one order import message.
//
//	{"restaurant_id": 1, "order_amount": 25.90, "order_time": "2024-01-01 09:30:00"}
type OrderMessage struct {
	RestaurantID int64           `json:"restaurant_id" validate:"required,gt=0"`
	OrderAmount  decimal.Decimal `json:"order_amount"`
	OrderTime    string          `json:"order_time" validate:"required"`
}

var errNegativeAmount = errors.New("order_amount must be >= 0")

// decodeOrder parses and validates a message value into an Order.
func decodeOrder(v *validator.Validate, value []byte) (models.Order, error) {
	var msg OrderMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return models.Order{}, fmt.Errorf("decode: %w", err)
	}
	if err := v.Struct(msg); err != nil {
		return models.Order{}, fmt.Errorf("validate: %w", err)
	}
	if msg.OrderAmount.IsNegative() {
		return models.Order{}, errNegativeAmount
	}
	at, err := parseOrderTime(msg.OrderTime)
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		RestaurantID: msg.RestaurantID,
		OrderAmount:  models.NewMoney(msg.OrderAmount),
		OrderTime:    at,
	}, nil
}

// parseOrderTime keeps the wall clock of zoned timestamps; order_time is stored without a zone.
func parseOrderTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid order_time %q", s)
}
