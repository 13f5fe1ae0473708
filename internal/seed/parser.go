package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// restaurantRecord is one element of restaurants.json.
type restaurantRecord struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Cuisine  *string `json:"cuisine"`
}

// orderRecord is one element of orders.json. order_time is assigned while seeding.
type orderRecord struct {
	RestaurantID int64           `json:"restaurant_id"`
	OrderAmount  decimal.Decimal `json:"order_amount"`
}

var errNotArray = errors.New("expected a JSON array")

// decodeArray streams the elements of a top-level JSON array, calling each for
// every decoded element. It returns the number of elements handled.
func decodeArray[T any](r io.Reader, each func(i int, rec T) error) (int, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return 0, fmt.Errorf("read opening token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return 0, errNotArray
	}

	n := 0
	for dec.More() {
		var rec T
		if err := dec.Decode(&rec); err != nil {
			return n, fmt.Errorf("record %d: %w", n, err)
		}
		if err := each(n, rec); err != nil {
			return n, err
		}
		n++
	}
	if _, err := dec.Token(); err != nil {
		return n, fmt.Errorf("read closing token: %w", err)
	}
	return n, nil
}

// toRestaurant validates a restaurant record. Ids are required because orders
// reference them.
func toRestaurant(rec restaurantRecord) (models.Restaurant, error) {
	name := strings.TrimSpace(rec.Name)
	switch {
	case rec.ID <= 0:
		return models.Restaurant{}, fmt.Errorf("invalid id %d", rec.ID)
	case name == "":
		return models.Restaurant{}, errors.New("name is required")
	}
	return models.Restaurant{
		ID:       rec.ID,
		Name:     name,
		Location: strings.TrimSpace(rec.Location),
		Cuisine:  rec.Cuisine,
	}, nil
}

func toOrder(rec orderRecord) (models.Order, error) {
	switch {
	case rec.RestaurantID <= 0:
		return models.Order{}, fmt.Errorf("invalid restaurant_id %d", rec.RestaurantID)
	case rec.OrderAmount.IsNegative():
		return models.Order{}, fmt.Errorf("negative order_amount %s", rec.OrderAmount)
	}
	return models.Order{RestaurantID: rec.RestaurantID, OrderAmount: models.NewMoney(rec.OrderAmount)}, nil
}
