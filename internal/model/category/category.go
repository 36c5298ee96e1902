package category

// Category labels chats in the sidebar with a name and an accent color.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
