package enum

import "encoding/json"

// StockLevel classifies an inventory item against its deficiency threshold
type StockLevel int

const (
	StockLevelNormal    StockLevel = 0
	StockLevelWarning   StockLevel = 1
	StockLevelDeficient StockLevel = 2
)

func (l StockLevel) String() string {
	return [...]string{"normal", "warning", "deficient"}[l]
}

func (l StockLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}
