package domain

// RestaurantProfile describes the restaurant the dashboard currently
// operates on. After an explicit switch it may differ from the user's home
// restaurant; the store replaces the value wholesale either way.
type RestaurantProfile struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Images   []string `json:"images,omitempty"`
}
