package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

// ContentSection one stored marketing-site section (content_sections table)
type ContentSection struct {
	Key       string          `db:"key"`
	Data      json.RawMessage `db:"data"` // JSONB, the typed record for Key
	UpdatedAt time.Time       `db:"updated_at"`
}

var ErrUnknownSection = errors.New("unknown content section")

// Section identifiers
const (
	SectionHero         = "hero"
	SectionAbout        = "about"
	SectionPrograms     = "programs"
	SectionImpact       = "impact"
	SectionTeam         = "team"
	SectionContact      = "contact"
	SectionDonationForm = "donationForm"
)

type HeroSection struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	CTAText         string `json:"ctaText,omitempty"`
	CTALink         string `json:"ctaLink,omitempty"`
}

type AboutSection struct {
	Title   string `json:"title"`
	Mission string `json:"mission,omitempty"`
	Vision  string `json:"vision,omitempty"`
	Story   string `json:"story,omitempty"`
	Image   string `json:"image,omitempty"`
}

type ProgramItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type ProgramsSection struct {
	Title string        `json:"title"`
	Items []ProgramItem `json:"items"`
}

type ImpactStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ImpactSection struct {
	Title string       `json:"title"`
	Stats []ImpactStat `json:"stats"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
	Photo string `json:"photo,omitempty"`
}

type TeamSection struct {
	Title   string       `json:"title"`
	Members []TeamMember `json:"members"`
}

type ContactSection struct {
	Email   string            `json:"email,omitempty"`
	Phone   string            `json:"phone,omitempty"`
	Address string            `json:"address,omitempty"`
	Socials map[string]string `json:"socials,omitempty"`
}

type APIEndpoint struct {
	URL    string `json:"url"`
	Method string `json:"method"`
}

// DonationFormSection drives the frontend donation form. The nested
// field descriptors are owned by the frontend and kept opaque.
type DonationFormSection struct {
	Title            string                     `json:"title"`
	Subtitle         string                     `json:"subtitle,omitempty"`
	FormFields       map[string]json.RawMessage `json:"formFields,omitempty"`
	APIEndpoint      *APIEndpoint               `json:"apiEndpoint,omitempty"`
	ValidationRules  map[string]json.RawMessage `json:"validationRules,omitempty"`
	ConfirmationPage map[string]json.RawMessage `json:"confirmationPage,omitempty"`
	ErrorMessages    map[string]json.RawMessage `json:"errorMessages,omitempty"`
	SuccessMessages  map[string]json.RawMessage `json:"successMessages,omitempty"`
}

var sectionRegistry = map[string]func() any{
	SectionHero:         func() any { return &HeroSection{} },
	SectionAbout:        func() any { return &AboutSection{} },
	SectionPrograms:     func() any { return &ProgramsSection{} },
	SectionImpact:       func() any { return &ImpactSection{} },
	SectionTeam:         func() any { return &TeamSection{} },
	SectionContact:      func() any { return &ContactSection{} },
	SectionDonationForm: func() any { return &DonationFormSection{} },
}

// SectionKeys returns the registered section ids, sorted.
func SectionKeys() []string {
	keys := make([]string, 0, len(sectionRegistry))
	for k := range sectionRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownSection reports whether key is registered.
func IsKnownSection(key string) bool {
	_, ok := sectionRegistry[key]
	return ok
}

// DecodeSection strictly decodes raw into the record registered for key.
// Unknown keys and trailing data are rejected.
func DecodeSection(key string, raw []byte) (any, error) {
	newRecord, ok := sectionRegistry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	rec := newRecord()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rec); err != nil {
		return nil, fmt.Errorf("invalid %s section: %w", key, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("invalid %s section: trailing data", key)
	}
	return rec, nil
}
