package content

import (
	"math/rand"
	"strconv"
	"strings"
)

const (
	FieldNumber = "number"
	FieldText   = "text"
)

type FieldSpec struct {
	Name string
	Type string
}

var CustomFields = []FieldSpec{
	{Name: "Story Points", Type: FieldNumber},
	{Name: "Sprint", Type: FieldText},
	{Name: "Epic", Type: FieldText},
	{Name: "Effort Estimate", Type: FieldNumber},
	{Name: "Department", Type: FieldText},
	{Name: "Severity", Type: FieldText},
	{Name: "Release Version", Type: FieldText},
	{Name: "Customer Impact", Type: FieldText},
	{Name: "Progress", Type: FieldNumber},
	{Name: "Cost Center", Type: FieldText},
}

// TextVocabulary holds the curated values of known text fields.
var TextVocabulary = map[string][]string{
	"Sprint":          {"Sprint 1", "Sprint 2", "Sprint 3", "Sprint 4", "Sprint 5"},
	"Epic":            {"User Management", "Payment System", "Analytics Dashboard", "Mobile App", "API v2"},
	"Department":      {"Engineering", "Product", "Marketing", "Sales", "Support"},
	"Severity":        {"Critical", "High", "Medium", "Low"},
	"Release Version": {"v1.0", "v1.1", "v2.0", "v2.1", "v3.0"},
	"Customer Impact": {"High", "Medium", "Low", "None"},
	"Cost Center":     {"R&D", "Operations", "Sales", "Marketing"},
}

var storyPoints = []string{"1", "2", "3", "5", "8", "13"}

// FieldValue renders a value that matches the field's declared type.
func FieldValue(field FieldSpec, rng *rand.Rand) string {
	if field.Type == FieldNumber {
		return numericValue(field.Name, rng)
	}
	return textValue(field.Name, rng)
}

func numericValue(name string, rng *rand.Rand) string {
	switch {
	case strings.Contains(name, "Points"), strings.Contains(name, "Estimate"):
		return Pick(rng, storyPoints)
	case strings.Contains(name, "Progress"):
		return strconv.Itoa(rng.Intn(101))
	default:
		return strconv.Itoa(1 + rng.Intn(100))
	}
}

func textValue(name string, rng *rand.Rand) string {
	if vocab, ok := TextVocabulary[name]; ok {
		return Pick(rng, vocab)
	}
	return "Value " + strconv.Itoa(1+rng.Intn(5))
}
