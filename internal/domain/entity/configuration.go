package entity

// MaxReceiptItems caps the configurable item strings shown on receipts.
const MaxReceiptItems = 7

// ShopConfiguration is the installation-wide configuration record.
type ShopConfiguration struct {
	AppName  string `json:"app_name"`
	LogoURL  string `json:"logo_url,omitempty"`
	Location string `json:"location,omitempty"`
	// Items are up to MaxReceiptItems short strings printed on receipts.
	Items                       []string `json:"items"`
	ReceiptThankYouMessage      string   `json:"receipt_thank_you_message,omitempty"`
	ReceiptItemsReceivedMessage string   `json:"receipt_items_received_message,omitempty"`
	// PinProtected gates the Goal and Gain views behind the shop PIN.
	PinProtected bool `json:"pin_protected"`
}

// DefaultConfiguration is used until the backend configuration loads.
func DefaultConfiguration() ShopConfiguration {
	return ShopConfiguration{
		AppName:                "Boutik",
		ReceiptThankYouMessage: "Thank you for your purchase!",
	}
}
