package api

type MenuItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
}

type ListMenuRequest struct{}

type ListMenuResponse struct {
	Items []*MenuItem `json:"items"`
}

type AddMenuItemRequest struct {
	// ID is optional; zero assigns the next free ID.
	ID int64 `json:"id,omitempty"`

	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
}

type AddMenuItemResponse struct {
	Item *MenuItem `json:"item"`
}

type DeleteMenuItemRequest struct {
	ID int64 `json:"id"`
}

type DeleteMenuItemResponse struct{}
