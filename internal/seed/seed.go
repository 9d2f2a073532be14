// Package seed loads the YAML seed file used by ade-admin to populate
// payment options and content sections.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/service"

	"gopkg.in/yaml.v3"
)

// File seed document
type File struct {
	PaymentOptions []PaymentOption `yaml:"paymentOptions"`
	Content        map[string]any  `yaml:"content"`

	sections map[string][]byte
}

type PaymentOption struct {
	Type        string `yaml:"type"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// Load decodes r and validates every content section against its record.
// Unknown top-level keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	f.sections = make(map[string][]byte, len(f.Content))
	for key, v := range f.Content {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("content.%s: %w", key, err)
		}
		if _, err := domain.DecodeSection(key, raw); err != nil {
			return nil, fmt.Errorf("content.%s: %w", key, err)
		}
		f.sections[key] = raw
	}
	for i, p := range f.PaymentOptions {
		if !domain.IsValidPaymentOptionType(strings.ToLower(p.Type)) {
			return nil, fmt.Errorf("paymentOptions[%d]: invalid type %q", i, p.Type)
		}
	}
	return &f, nil
}

// Sections returns the validated section keys in sorted order.
func (f *File) Sections() []string {
	keys := make([]string, 0, len(f.sections))
	for k := range f.sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Result counts what Apply wrote.
type Result struct {
	OptionsCreated int
	OptionsSkipped int
	Sections       int
}

// Apply writes f through the services. Payment options already present with
// the same type and label are skipped; sections are replaced.
func Apply(ctx context.Context, f *File, options *service.PaymentOptionService, content *service.ContentService) (Result, error) {
	var res Result
	existing, err := options.ListPaymentOptions(ctx)
	if err != nil {
		return res, err
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[optionKey(p.Type, p.Label)] = true
	}
	for _, p := range f.PaymentOptions {
		if seen[optionKey(p.Type, p.Label)] {
			res.OptionsSkipped++
			continue
		}
		if _, err := options.CreatePaymentOption(ctx, service.PaymentOptionRequest{
			Type:        p.Type,
			Label:       p.Label,
			Description: p.Description,
		}); err != nil {
			return res, fmt.Errorf("payment option %q: %w", p.Label, err)
		}
		seen[optionKey(p.Type, p.Label)] = true
		res.OptionsCreated++
	}
	for _, key := range f.Sections() {
		if _, err := content.UpdateSection(ctx, key, f.sections[key]); err != nil {
			return res, fmt.Errorf("content section %s: %w", key, err)
		}
		res.Sections++
	}
	return res, nil
}

func optionKey(typ, label string) string {
	return strings.ToLower(strings.TrimSpace(typ)) + "|" + strings.TrimSpace(label)
}
