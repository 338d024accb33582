package booking

// BookedSlot is a minimal projection of an active appointment used by
// the availability computation.
type BookedSlot struct {
	ID        uint
	StartTime string
	EndTime   string
}

// View is an appointment joined with its display fields for the
// presentation layer.
type View struct {
	ID        uint   `json:"id"`
	Reference string `json:"reference"`

	ClientID   uint   `json:"client_id"`
	ClientTgID int64  `json:"client_tg_id"`
	MasterID   uint   `json:"master_id"`
	MasterTgID int64  `json:"master_tg_id"`
	ServiceID  uint   `json:"service_id"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`

	ClientName   string `json:"client_name"`
	ClientPhone  string `json:"client_phone"`
	MasterName   string `json:"master_name"`
	ServiceTitle string `json:"service_title"`

	ProposedDate      *string `json:"proposed_date,omitempty"`
	ProposedStartTime *string `json:"proposed_start_time,omitempty"`
	ProposedEndTime   *string `json:"proposed_end_time,omitempty"`
}

// ListFilter selects appointments for either a client or a master,
// optionally narrowed to a date and a status set.
type ListFilter struct {
	ClientID *uint
	MasterID *uint
	Date     string
	Statuses []Status
}
