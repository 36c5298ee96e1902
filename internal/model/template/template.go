package template

// Template is a reusable prompt snippet the user can insert into the
// composer.
type Template struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}
