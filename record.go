package bizextract

import (
	"encoding/json"
	"strings"
)

// Weekdays lists the business hours keys in week order.
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// BusinessHours holds free-form opening hours for each weekday,
// e.g. "8:00 AM - 6:00 PM", "Closed" or "" when unknown.
type BusinessHours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

// Day returns the hours for a weekday key (case-insensitive).
// Unknown keys return "".
func (h BusinessHours) Day(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "monday":
		return h.Monday
	case "tuesday":
		return h.Tuesday
	case "wednesday":
		return h.Wednesday
	case "thursday":
		return h.Thursday
	case "friday":
		return h.Friday
	case "saturday":
		return h.Saturday
	case "sunday":
		return h.Sunday
	}
	return ""
}

// Professional is a key team member listed on the business website.
type Professional struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	IsAvailable bool   `json:"is_available"`
}

// UnmarshalJSON decodes a professional, defaulting IsAvailable to true
// when the field is absent or null.
func (p *Professional) UnmarshalJSON(data []byte) error {
	type professional Professional
	v := professional{IsAvailable: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Professional(v)
	return nil
}

// BusinessRecord is the structured profile of one business.
//
// Every field is always present: absence of information is the empty value
// of the field's type ("", empty list, false), never null.
type BusinessRecord struct {
	Name               string         `json:"name"`
	PhoneNumbers       string         `json:"phoneNumbers"`
	Address            string         `json:"address"`
	City               string         `json:"city"`
	State              string         `json:"state"`
	Pincode            string         `json:"pincode"`
	Website            string         `json:"website"`
	Email              string         `json:"email"`
	BusinessHours      BusinessHours  `json:"businessHours"`
	Is247              bool           `json:"is_24_7"`
	HolidayClosures    string         `json:"holidayClosures"`
	Professionals      []Professional `json:"professionals"`
	Manager            string         `json:"manager"`
	OperationsLead     string         `json:"operationsLead"`
	ServicesOffered    []string       `json:"servicesOffered"`
	ServicesNotOffered string         `json:"servicesNotOffered"`
	Specialties        []string       `json:"specialties"`
}

// NewBusinessRecord returns a record with every field at its default value.
func NewBusinessRecord() *BusinessRecord {
	return &BusinessRecord{
		Professionals:   []Professional{},
		ServicesOffered: []string{},
		Specialties:     []string{},
	}
}

// IsEmpty reports whether the record carries no information at all.
func (r *BusinessRecord) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Name == "" &&
		r.PhoneNumbers == "" &&
		r.Address == "" &&
		r.City == "" &&
		r.State == "" &&
		r.Pincode == "" &&
		r.Website == "" &&
		r.Email == "" &&
		r.BusinessHours == (BusinessHours{}) &&
		!r.Is247 &&
		r.HolidayClosures == "" &&
		len(r.Professionals) == 0 &&
		r.Manager == "" &&
		r.OperationsLead == "" &&
		len(r.ServicesOffered) == 0 &&
		r.ServicesNotOffered == "" &&
		len(r.Specialties) == 0
}

// UnmarshalJSON decodes a record on top of the default record so missing
// fields keep their defaults and null lists become empty lists.
func (r *BusinessRecord) UnmarshalJSON(data []byte) error {
	type record BusinessRecord
	v := record(*NewBusinessRecord())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = BusinessRecord(v)
	r.fillLists()
	return nil
}

// MarshalJSON encodes the record with empty lists instead of null.
func (r BusinessRecord) MarshalJSON() ([]byte, error) {
	type record BusinessRecord
	r.fillLists()
	return json.Marshal(record(r))
}

func (r *BusinessRecord) fillLists() {
	if r.Professionals == nil {
		r.Professionals = []Professional{}
	}
	if r.ServicesOffered == nil {
		r.ServicesOffered = []string{}
	}
	if r.Specialties == nil {
		r.Specialties = []string{}
	}
}

// DecodeRecord decodes a JSON object into a fresh BusinessRecord.
func DecodeRecord(data []byte) (*BusinessRecord, error) {
	record := NewBusinessRecord()
	if err := json.Unmarshal(data, record); err != nil {
		return nil, Errorf(EINVALID, "decoding business record: %v", err)
	}
	return record, nil
}

// RecordDecoder decodes a structured service response into a BusinessRecord.
// Implementations must fail rather than return a partially-decoded record.
type RecordDecoder interface {
	Decode(data []byte) (*BusinessRecord, error)
}
