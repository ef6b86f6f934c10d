package gemini

import (
	"slices"

	"github.com/fwojciec/bizextract"
	"google.golang.org/genai"
)

// ResponseSchema returns the business record shape as a Gemini response
// schema. Every property is required so the model always emits the full
// record, using empty values for missing information.
func ResponseSchema() *genai.Schema {
	days := make(map[string]*genai.Schema, len(bizextract.Weekdays))
	for _, day := range bizextract.Weekdays {
		days[day] = stringSchema("")
	}
	hours := objectSchema(slices.Clone(bizextract.Weekdays), days)

	professional := objectSchema(
		[]string{"name", "role", "is_available"},
		map[string]*genai.Schema{
			"name":         stringSchema(""),
			"role":         stringSchema(""),
			"is_available": {Type: genai.TypeBoolean},
		},
	)

	schema := objectSchema(
		[]string{
			"name", "phoneNumbers", "address", "city", "state", "pincode",
			"website", "email", "businessHours", "is_24_7", "holidayClosures",
			"professionals", "manager", "operationsLead", "servicesOffered",
			"servicesNotOffered", "specialties",
		},
		map[string]*genai.Schema{
			"name":               stringSchema("Full business name."),
			"phoneNumbers":       stringSchema("All phone numbers, comma-separated."),
			"address":            stringSchema("Primary street address."),
			"city":               stringSchema(""),
			"state":              stringSchema(""),
			"pincode":            stringSchema("ZIP or postal code."),
			"website":            stringSchema(""),
			"email":              stringSchema(""),
			"businessHours":      hours,
			"is_24_7":            {Type: genai.TypeBoolean},
			"holidayClosures":    stringSchema(""),
			"professionals":      {Type: genai.TypeArray, Items: professional},
			"manager":            stringSchema(""),
			"operationsLead":     stringSchema(""),
			"servicesOffered":    {Type: genai.TypeArray, Items: stringSchema("")},
			"servicesNotOffered": stringSchema(""),
			"specialties":        {Type: genai.TypeArray, Items: stringSchema("")},
		},
	)
	schema.Description = "Structured profile of one business extracted from its website."
	return schema
}

// objectSchema builds an object schema whose properties are all required
// and emitted in the given order.
func objectSchema(order []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         order,
		PropertyOrdering: order,
	}
}

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}
