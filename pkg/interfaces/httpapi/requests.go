package httpapi

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

// textField accepts a JSON string or a bare JSON number and keeps its text,
// so form input reaches the core parsers unchanged
type textField string

func (t *textField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = textField(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = textField(n.String())
	return nil
}

type createSessionRequest struct {
	CallerID string `json:"caller_id"`
	Role     string `json:"role"`
}

type createSessionResponse struct {
	Token     string    `json:"token"`
	CallerID  string    `json:"caller_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type dishRequest struct {
	DishName string    `json:"dish_name"`
	Servings textField `json:"servings"`
}

type addToCartRequest struct {
	SupplierID entities.SupplierID `json:"supplier_id"`
	ItemName   string              `json:"item_name"`
}

type addListingRequest struct {
	ItemName      string    `json:"item_name"`
	UnitPrice     textField `json:"unit_price"`
	Unit          string    `json:"unit"`
	StockQuantity textField `json:"stock_quantity"`
}

type updatePriceRequest struct {
	UnitPrice textField `json:"unit_price"`
}

type updateStockRequest struct {
	StockQuantity textField `json:"stock_quantity"`
}
