package club

import "fmt"

// Club is a member organization fielding players in competitions.
type Club struct {
	ID        string
	PlaceID   string
	Name      string
	ShortName string
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}
