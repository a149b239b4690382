package domain

type Pilot struct {
	ID          int64
	FullName    string
	CompanyID   *int64
	LocationIDs []int64
}

// ServesLocation reports whether the pilot can be booked for the location.
func (p *Pilot) ServesLocation(locationID int64) bool {
	for _, id := range p.LocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}

type Company struct {
	ID   int64
	Name string
}
