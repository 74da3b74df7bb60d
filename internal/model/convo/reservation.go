package convo

// Step is the stage the slot-filling conversation is currently at.
type Step string

const (
	StepIdle       Step = "idle"
	StepAskDate    Step = "askDate"
	StepAskTime    Step = "askTime"
	StepAskPeople  Step = "askPeople"
	StepAskContact Step = "askContact"
	StepConfirm    Step = "confirm"
)

// Valid reports whether s is one of the six known steps.
func (s Step) Valid() bool {
	switch s {
	case StepIdle, StepAskDate, StepAskTime, StepAskPeople, StepAskContact, StepConfirm:
		return true
	}
	return false
}

// Draft is the in-progress reservation filled across turns. Fields are
// pointers so "never provided" stays distinct from "provided empty": the
// message field in particular must be touched before confirmation even
// though its value may be blank.
type Draft struct {
	Date    *string `json:"date,omitempty"`
	Time    *string `json:"time,omitempty"`
	People  *int    `json:"people,omitempty"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Message *string `json:"message,omitempty"`
}

// Merge copies the set fields of other into d, last write wins per field.
func (d *Draft) Merge(other Draft) {
	if other.Date != nil {
		d.Date = other.Date
	}
	if other.Time != nil {
		d.Time = other.Time
	}
	if other.People != nil {
		d.People = other.People
	}
	if other.Name != nil {
		d.Name = other.Name
	}
	if other.Email != nil {
		d.Email = other.Email
	}
	if other.Phone != nil {
		d.Phone = other.Phone
	}
	if other.Message != nil {
		d.Message = other.Message
	}
}

// Empty reports whether no field has been filled yet.
func (d Draft) Empty() bool {
	return d.Date == nil && d.Time == nil && d.People == nil &&
		d.Name == nil && d.Email == nil && d.Phone == nil && d.Message == nil
}

// ContactComplete reports whether every contact field has been provided,
// the optional message included.
func (d Draft) ContactComplete() bool {
	return d.Name != nil && d.Email != nil && d.Phone != nil && d.Message != nil
}

// MissingContactFields lists the contact labels still unfilled, in the
// order they are prompted for.
func (d Draft) MissingContactFields() []string {
	var missing []string
	if d.Name == nil {
		missing = append(missing, "Name *")
	}
	if d.Email == nil {
		missing = append(missing, "Email *")
	}
	if d.Phone == nil {
		missing = append(missing, "Phone *")
	}
	if d.Message == nil {
		missing = append(missing, "Message")
	}
	return missing
}
