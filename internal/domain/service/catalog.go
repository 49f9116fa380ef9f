package service

// Service is a static catalog entry for a category of maintenance work.
type Service struct {
	Key  string
	Name string
	Desc string
	Icon string
}

// Catalog is the fixed set of services offered by the society.
// Defined at startup, never derived from storage.
var Catalog = []Service{
	{Key: "plumber", Name: "Plumber", Desc: "Leaks, taps, bathroom fixes", Icon: "🔧"},
	{Key: "electrician", Name: "Electrician", Desc: "Wiring, switches, fittings", Icon: "💡"},
	{Key: "carpenter", Name: "Carpenter", Desc: "Repairs, shelves, doors", Icon: "🪚"},
	{Key: "cleaning", Name: "Cleaning", Desc: "Deep clean, housekeeping", Icon: "🧼"},
	{Key: "pest", Name: "Pest Control", Desc: "Cockroaches, termites", Icon: "🐜"},
	{Key: "hvac", Name: "HVAC", Desc: "AC servicing & maintenance", Icon: "❄️"},
	{Key: "security", Name: "Security", Desc: "Visitor/guard assistance", Icon: "🛡️"},
}

// TimeSlots is the fixed set of bookable time slots.
var TimeSlots = []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}

// ByKey returns the catalog entry for a service key.
// POST: Returns the entry and true, or zero value and false if unknown
func ByKey(key string) (Service, bool) {
	for _, s := range Catalog {
		if s.Key == key {
			return s, true
		}
	}
	return Service{}, false
}

// IsValidSlot reports whether t is one of the bookable time slots.
func IsValidSlot(t string) bool {
	for _, s := range TimeSlots {
		if s == t {
			return true
		}
	}
	return false
}
