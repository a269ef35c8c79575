package customer

// Customer represents a bank customer as exchanged with the backend
type Customer struct {
	ID            int64  `json:"id,omitempty"`
	FirstName     string `json:"firstName"`
	MiddleInitial string `json:"middleInitial"`
	LastName      string `json:"lastName"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           int    `json:"zip"`
	Phone         int64  `json:"phone"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
}

// FullName returns the display name of the customer
func (c *Customer) FullName() string {
	if c.MiddleInitial == "" {
		return c.FirstName + " " + c.LastName
	}
	return c.FirstName + " " + c.MiddleInitial + " " + c.LastName
}
