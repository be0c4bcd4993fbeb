package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
)

// parseWriter parses "Name[:percentage[:role]]".
func parseWriter(s string) (models.WriterCredit, error) {
	parts := strings.SplitN(s, ":", 3)
	w := models.WriterCredit{Name: strings.TrimSpace(parts[0])}
	if w.Name == "" {
		return w, fmt.Errorf("writer %q: name is required", s)
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		pct, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return w, fmt.Errorf("writer %q: invalid percentage: %w", s, err)
		}
		w.OwnershipPercentage = pct
	}
	if len(parts) > 2 {
		w.Role = strings.TrimSpace(parts[2])
	}
	return w, nil
}

// parseSplits parses "name=percentage" pairs.
func parseSplits(values []string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	splits := make(map[string]float64, len(values))
	for _, v := range values {
		name, pct, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("split %q: expected name=percentage", v)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return nil, fmt.Errorf("split %q: invalid percentage: %w", v, err)
		}
		splits[name] = f
	}
	return splits, nil
}

// parseRegistration parses "ORG[:registration-id]".
func parseRegistration(s string) (models.Registration, error) {
	org, id, _ := strings.Cut(s, ":")
	org = strings.TrimSpace(org)
	if org == "" {
		return models.Registration{}, fmt.Errorf("registration %q: organization is required", s)
	}
	return models.Registration{Organization: org, RegistrationID: strings.TrimSpace(id)}, nil
}

func writerNames(writers []models.WriterCredit) string {
	names := make([]string, 0, len(writers))
	for _, w := range writers {
		names = append(names, w.Name)
	}
	return strings.Join(names, ", ")
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// displayISWC prints well-formed codes in the dotted form and anything else as entered.
func displayISWC(iswc string) string {
	if f, err := utils.FormatISWC(iswc); err == nil {
		return f
	}
	return iswc
}
