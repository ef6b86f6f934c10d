package bizextract

import (
	"fmt"
	"strings"
)

// StandardServices is the controlled vocabulary that offered services are
// normalized to when the page wording is a recognizable synonym.
var StandardServices = []string{
	"Wellness & Preventive Exams",
	"Puppy & Kitten Care Programs",
	"Vaccinations & Titers",
	"Flea, Tick & Heartworm Prevention",
	"Microchipping",
	"Senior Pet Wellness",
	"Nutrition & Diet Counseling",
	"Sick Pet Examinations",
	"Pain Management",
	"Internal Medicine Consults",
	"Anal Gland Expression",
	"In-House Laboratory",
	"Radiology (X-rays)",
	"Ultrasound",
	"Allergy Testing",
	"Cytology (Ear, Skin)",
	"Urinalysis/Fecal Exam",
	"Cardiac & Respiratory Diagnostics",
	"Spay/Neuter Surgery",
	"Soft Tissue Surgery",
	"Orthopedic Surgery",
	"Dental Cleaning & Extractions",
	"Dermatology",
	"Ophthalmology",
	"Oncology",
	"Behavioral Counseling",
	"Urgent Care Appointments",
	"Emergency Stabilization",
	"IV Fluid Therapy",
	"Post-Surgical Recovery Monitoring",
	"Isolation & Infectious Disease Care",
	"Quality of Life/Euthanasia Consult",
	"Hospice & Palliative Care",
	"Humane Euthanasia Services",
	"Laser Therapy",
	"Acupuncture",
	"Physical Therapy / Rehabilitation",
	"Homeopathy",
	"Medication Refill Pick-up",
	"Prescription Diet Pick-up",
}

const instructionTemplate = `You are a data extraction specialist. Extract structured information about one business from the website content below.

The result is validated against a strict schema and fed straight into a form with no transformation, so follow the field rules exactly.

FIELDS:
1. name: full business name. "" if not found.

2. phoneNumbers: every phone number as one comma-separated string.
   - Example: "(555) 123-4567, (555) 123-4568" or "(555) 123-4567"
   - "" if not found.

3. address: primary street address only, e.g. "123 Oak Street". "" if not found.

4. city: city name. "" if not found.

5. state: state name or abbreviation. "" if not found.

6. pincode: ZIP or postal code. "" if not found.

7. website: the business website URL. "" if not found.

8. email: primary email address. "" if not found.

9. businessHours: an object keyed by weekday (monday through sunday).
   - Values are simple strings such as "8:00 AM - 6:00 PM", "Closed" or "24/7".
   - Use "" for any day without stated hours.
   - Fill in hours even when the business is open around the clock.

10. is_24_7: true only if the business operates 24/7, otherwise false.

11. holidayClosures: holiday closure notes, e.g. "Closed for Thanksgiving. Limited hours on Christmas Eve." "" if not found.

12. professionals: key team members as objects {"name", "role", "is_available"}.
    - is_available is true unless the page says otherwise.
    - [] if not found.

13. manager: name of the manager or owner. "" if not found.

14. operationsLead: name of the operations lead or technical head. "" if not found.

15. servicesOffered: every service offered, as an array of strings.
    - When a service matches one of the STANDARD SERVICES below, even under a different name, use the standard name.
    - Otherwise use the name as written on the website.
    - STANDARD SERVICES:
%s
    - [] if not found.

16. servicesNotOffered: services the website explicitly says are NOT offered, comma-separated, e.g. "Boarding, Grooming, Delivery". "" if not found.

17. specialties: specialties, categories or focus areas as an array of strings. [] if not found.

EMPTY VALUES:
- Strings: ""
- Arrays: []
- Booleans: false (professionals[].is_available defaults to true)
- businessHours: always return all seven days, with "" for unknown days.

Only include information explicitly stated on the website. Be thorough and accurate.

Website content:`

// ExtractionInstructions is the fixed instruction block sent ahead of the
// packed page content.
var ExtractionInstructions = fmt.Sprintf(instructionTemplate, formatServices(StandardServices))

func formatServices(services []string) string {
	lines := make([]string, len(services))
	for i, s := range services {
		lines[i] = fmt.Sprintf("      - %s", s)
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt composes the full extraction prompt for packed page content.
// An empty context still yields a complete prompt.
func BuildPrompt(packed string) string {
	return ExtractionInstructions + "\n\n" + packed
}
