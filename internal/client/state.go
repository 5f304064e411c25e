// Package client is the front-end side of the user records API: an explicit
// State with pure transition functions, a Controller that sequences them
// around API calls, and an HTTP implementation of the API.
package client

import (
	"errors"
	"slices"
	"strconv"
	"time"
)

// Banner texts shown when an action fails without a server message.
const (
	MsgFetchFailed  = "Error fetching users"
	MsgSaveFailed   = "Error saving user"
	MsgDeleteFailed = "Error deleting user"
)

// Draft field names accepted by EditField.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldAge        = "age"
	FieldOccupation = "occupation"
)

// Record is a user record as returned by the server.
type Record struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Age        int       `json:"age"`
	Occupation string    `json:"occupation"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Draft is the unsaved form. Age is kept as typed text.
type Draft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Age        string `json:"age"`
	Occupation string `json:"occupation"`
}

// State is everything the front end renders. Transitions take a State by
// value and return the next one; the Records slice is never modified in
// place.
type State struct {
	Records         []Record
	Draft           Draft
	EditingID       string
	Loading         bool
	Error           string
	PendingDeleteID string
}

// Editing reports whether the draft targets an existing record.
func (s State) Editing() bool { return s.EditingID != "" }

// BeginLoad marks a list fetch in flight. Records and banner are kept.
func BeginLoad(s State) State {
	s.Loading = true
	return s
}

// LoadSucceeded replaces the list and clears the banner.
func LoadSucceeded(s State, records []Record) State {
	s.Records = slices.Clone(records)
	if s.Records == nil {
		s.Records = []Record{}
	}
	s.Error = ""
	s.Loading = false
	return s
}

// LoadFailed keeps the previous list.
func LoadFailed(s State) State {
	s.Error = MsgFetchFailed
	s.Loading = false
	return s
}

// EditField sets one draft field. Unknown names leave the state unchanged.
func EditField(s State, field, value string) State {
	switch field {
	case FieldName:
		s.Draft.Name = value
	case FieldEmail:
		s.Draft.Email = value
	case FieldAge:
		s.Draft.Age = value
	case FieldOccupation:
		s.Draft.Occupation = value
	}
	return s
}

// BeginSubmit marks a save in flight and clears the banner.
func BeginSubmit(s State) State {
	s.Loading = true
	s.Error = ""
	return s
}

// SubmitSucceeded discards the draft. Loading stays set because a reload
// follows.
func SubmitSucceeded(s State) State {
	s.Draft = Draft{}
	s.EditingID = ""
	return s
}

// SubmitFailed keeps the draft for another attempt and shows the server's
// message when there is one.
func SubmitFailed(s State, err error) State {
	s.Error = MsgSaveFailed
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		s.Error = apiErr.Message
	}
	s.Loading = false
	return s
}

// StartEdit loads a record into the draft.
func StartEdit(s State, r Record) State {
	s.Draft = Draft{
		Name:       r.Name,
		Email:      r.Email,
		Age:        strconv.Itoa(r.Age),
		Occupation: r.Occupation,
	}
	s.EditingID = r.ID
	return s
}

// RequestDelete asks for confirmation before anything is sent.
func RequestDelete(s State, id string) State {
	s.PendingDeleteID = id
	return s
}

// DismissDelete drops a pending confirmation without deleting.
func DismissDelete(s State) State {
	s.PendingDeleteID = ""
	return s
}

// BeginDelete consumes the pending confirmation and marks the request in flight.
func BeginDelete(s State) State {
	s.PendingDeleteID = ""
	s.Loading = true
	return s
}

// DeleteSucceeded runs after the reload and clears the banner.
func DeleteSucceeded(s State) State {
	s.Error = ""
	s.Loading = false
	return s
}

// DeleteFailed sets the delete banner. The list is left as it was.
func DeleteFailed(s State) State {
	s.Error = MsgDeleteFailed
	s.Loading = false
	return s
}

// Cancel abandons the draft.
func Cancel(s State) State {
	s.Draft = Draft{}
	s.EditingID = ""
	s.Error = ""
	return s
}
