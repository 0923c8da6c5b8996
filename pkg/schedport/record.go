package schedport

// AppointmentRecord is one denormalized row from the legacy scheduling
// database. The legacy schema caps the appointment↔service relationship at
// eleven fixed columns; Services mirrors that cap so the loader can
// re-normalize the occupied slots into junction rows.
//
// Date, Time and CreatedAt are carried as the text the source stores and are
// validated server-side via SQL casts during the load.
type AppointmentRecord struct {
	// Patient identity fields
	FirstName   string
	LastName    string
	PatientCode string

	// Appointment fields
	Date        string // "2006-01-02"
	Time        string // "15:04"
	DurationMin int
	Overbooked  bool
	Status      string
	CreatedAt   string // "2006-01-02 15:04:05"
	CreatedBy   string

	// Service-name slots. Empty or whitespace-only slots are unoccupied.
	Services [ServiceSlotCount]string
}
