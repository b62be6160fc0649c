package view

// Data is a View Model (DTO) used specifically for the profile template.
// It simplifies the data received from the domain layer into simple string types
// for safe and easy rendering in the template.
type Data struct {
	ViewID       string
	Name         string
	Subtitle     string
	Department   string
	LastLogin    string
	InventoryURL string
	LogoutURL    string

	// Member-only rows. Guests have no email, program or issue panel.
	ShowMemberDetails bool
	Email             string
	Program           string

	Panel Panel
}

// Panel is the "Issued Items" section. It is re-rendered on its own after a return.
type Panel struct {
	ViewID string
	Items  []Item
}

// Item is one issued item row.
type Item struct {
	ID        string
	Name      string
	Returned  bool
	Quantity  string
	IssuedOn  string
	Deadline  string // empty when no "return within" notice applies
	ReturnURL string // empty when the item cannot be returned
}
