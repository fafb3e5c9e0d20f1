package domain

import "time"

// InquiryStatus tracks whether a contact-form inquiry was handled.
type InquiryStatus string

const (
	InquiryPending InquiryStatus = "pending"
	InquirySolved  InquiryStatus = "solved"
)

// Inquiry is a message sent through the public contact form.
type Inquiry struct {
	ID        string        `json:"_id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Topic     string        `json:"topic"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type InquiryInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Topic     string `json:"topic"`
	Message   string `json:"message"`
}

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID        string    `json:"_id,omitempty"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
