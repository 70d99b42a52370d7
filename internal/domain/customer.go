package domain

// Customer is a saved rider profile.
// The ID is immutable once assigned. Names and nicknames carry no uniqueness
// constraint — two riders may share a name. Customers are referenced (not
// owned) by Trip.CustomerID and are never updated or deleted.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Notes    string `json:"notes"`
	Phone    string `json:"phone,omitempty"`
}
