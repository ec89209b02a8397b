package entity

import (
	"context"
	"strconv"
)

// Status labels are open-ended; these are the ones the agent writes.
type Status string

const (
	StatusSecured    Status = "secured"
	StatusNoResponse Status = "no_response"
	StatusFollowedUp Status = "followed_up"
)

// LeadRecordHeader is the column order of the lead log.
var LeadRecordHeader = []string{"lead_id", "name", "age", "country", "interest", "status"}

// LeadRecord is one persisted row of the lead log. Rows are append-only and
// the same lead id may appear many times.
type LeadRecord struct {
	LeadID   int    `json:"lead_id"`
	Name     string `json:"name"`
	Age      string `json:"age"`
	Country  string `json:"country"`
	Interest string `json:"interest"`
	Status   Status `json:"status"`
}

func NewSecuredRecord(lead Lead, age, country, interest string) *LeadRecord {
	return &LeadRecord{
		LeadID:   lead.ID,
		Name:     lead.Name,
		Age:      age,
		Country:  country,
		Interest: interest,
		Status:   StatusSecured,
	}
}

func NewStatusRecord(lead Lead, status Status) *LeadRecord {
	return &LeadRecord{
		LeadID: lead.ID,
		Name:   lead.Name,
		Status: status,
	}
}

// Row renders the record in LeadRecordHeader order.
func (r *LeadRecord) Row() []string {
	return []string{
		strconv.Itoa(r.LeadID),
		r.Name,
		r.Age,
		r.Country,
		r.Interest,
		string(r.Status),
	}
}

type LeadRecordRepository interface {
	Save(ctx context.Context, record *LeadRecord) error
}
