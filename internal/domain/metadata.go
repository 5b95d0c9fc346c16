package domain

import (
	"encoding/json"
	"fmt"
)

// Metadata is the scoring metadata of an action: the signals shared by every action type
// plus exactly one typed body selected by the action type.
type Metadata struct {
	ContentLength int  `json:"content_length"`
	HasEvidence   bool `json:"has_evidence"`
	HasMedia      bool `json:"has_media"`

	Details MetadataDetails `json:"-"`
}

// MetadataDetails is the type-specific part of the metadata union
type MetadataDetails interface {
	ActionType() ActionType
}

// DonationDetails are the optional fields of a DONATION action
type DonationDetails struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency *string  `json:"currency,omitempty"`
}

func (DonationDetails) ActionType() ActionType { return ActionTypeDonation }

// EducationDetails are the optional fields of an EDUCATION action
type EducationDetails struct {
	Hours    *float64 `json:"hours,omitempty"`
	Learners *int     `json:"learners,omitempty"`
}

func (EducationDetails) ActionType() ActionType { return ActionTypeEducation }

// VolunteerDetails are the optional fields of a VOLUNTEER action
type VolunteerDetails struct {
	Hours *float64 `json:"hours,omitempty"`
}

func (VolunteerDetails) ActionType() ActionType { return ActionTypeVolunteer }

// ContentDetails are the optional fields of a CONTENT action
type ContentDetails struct {
	WordCount *int  `json:"word_count,omitempty"`
	Original  *bool `json:"original,omitempty"`
}

func (ContentDetails) ActionType() ActionType { return ActionTypeContent }

// MentorshipDetails are the optional fields of a MENTORSHIP action
type MentorshipDetails struct {
	Sessions *int `json:"sessions,omitempty"`
}

func (MentorshipDetails) ActionType() ActionType { return ActionTypeMentorship }

// CommunityDetails are the optional fields of a COMMUNITY action
type CommunityDetails struct {
	Participants *int `json:"participants,omitempty"`
}

func (CommunityDetails) ActionType() ActionType { return ActionTypeCommunity }

// newDetails returns an empty details body for the action type
func newDetails(t ActionType) (MetadataDetails, error) {
	switch t {
	case ActionTypeDonation:
		return &DonationDetails{}, nil
	case ActionTypeEducation:
		return &EducationDetails{}, nil
	case ActionTypeVolunteer:
		return &VolunteerDetails{}, nil
	case ActionTypeContent:
		return &ContentDetails{}, nil
	case ActionTypeMentorship:
		return &MentorshipDetails{}, nil
	case ActionTypeCommunity:
		return &CommunityDetails{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownActionType, t)
}

// DecodeMetadata decodes flat metadata JSON into the union member for the action type.
// Structural validation (unknown fields, bounds) is done against the type's JSON schema before this.
func DecodeMetadata(t ActionType, raw []byte) (*Metadata, error) {
	details, err := newDetails(t)
	if err != nil {
		return nil, err
	}

	var md Metadata
	if len(raw) == 0 {
		md.Details = details
		return &md, nil
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, NewValidationError("metadata", err.Error())
	}
	if err := json.Unmarshal(raw, details); err != nil {
		return nil, NewValidationError("metadata", err.Error())
	}
	md.Details = details
	return &md, nil
}

// MarshalJSON flattens the common and typed fields into a single object
func (m Metadata) MarshalJSON() ([]byte, error) {
	type common Metadata
	base, err := json.Marshal(common(m))
	if err != nil {
		return nil, err
	}
	if m.Details == nil {
		return base, nil
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	detailBytes, err := json.Marshal(m.Details)
	if err != nil {
		return nil, err
	}
	detailFields := map[string]json.RawMessage{}
	if err := json.Unmarshal(detailBytes, &detailFields); err != nil {
		return nil, err
	}
	for k, v := range detailFields {
		fields[k] = v
	}
	return json.Marshal(fields)
}
