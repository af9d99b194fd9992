package place

import "fmt"

// Place is a town or region a club is registered under.
type Place struct {
	ID     string
	Name   string
	Region string
}

func (p Place) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("place id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("place name is required")
	}

	return nil
}
