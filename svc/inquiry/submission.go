package inquiry

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/text/width"

	"github.com/hadis/inquiry/pkg/email"
)

// Form option values carried by a submission.
const (
	PhoneCallAllowed    = "allow_phone_call"
	PhoneCallDisallowed = "disallow_phone_call"

	UsageBusiness = "business"
	UsagePersonal = "personal"

	InvoiceRegistered = "registered"

	RegistrationNumberWillProvide = "will_provide"
)

// Submission is one quote request posted by the contact form.
type Submission struct {
	Name                      string    `json:"name"`
	Email                     string    `json:"email"`
	Phone                     string    `json:"phone"`
	PhonePermission           string    `json:"phonePermission"`
	UsageType                 string    `json:"usageType"`
	InvoiceRegistration       string    `json:"invoiceRegistration"`
	ProvideRegistrationNumber string    `json:"provideRegistrationNumber"`
	City                      string    `json:"city"`
	Municipality              string    `json:"product_info"`
	AdditionalNotes           string    `json:"additional_notes"`
	Products                  []Product `json:"productsList"`
}

// Product is one item the customer wants appraised.
// A nil entry in Images is an upload slot the customer cleared.
type Product struct {
	Details   string    `json:"product_details"`
	Condition string    `json:"product_condition"`
	Images    []*string `json:"images"`
}

// Normalize returns a copy with surrounding whitespace trimmed and
// full-width ASCII (common in Japanese input) folded in email and phone.
func (s Submission) Normalize() Submission {
	out := s
	out.Name = strings.TrimSpace(s.Name)
	out.Email = strings.TrimSpace(width.Fold.String(s.Email))
	out.Phone = strings.TrimSpace(width.Fold.String(s.Phone))
	out.PhonePermission = strings.TrimSpace(s.PhonePermission)
	out.UsageType = strings.TrimSpace(s.UsageType)
	out.InvoiceRegistration = strings.TrimSpace(s.InvoiceRegistration)
	out.ProvideRegistrationNumber = strings.TrimSpace(s.ProvideRegistrationNumber)
	out.City = strings.TrimSpace(s.City)
	out.Municipality = strings.TrimSpace(s.Municipality)
	out.AdditionalNotes = strings.TrimSpace(s.AdditionalNotes)

	out.Products = make([]Product, len(s.Products))
	for i, p := range s.Products {
		out.Products[i] = Product{
			Details:   strings.TrimSpace(p.Details),
			Condition: strings.TrimSpace(p.Condition),
			Images:    p.Images,
		}
	}
	return out
}

// Validate checks the fields a notification cannot be built without.
// Unknown option codes are not errors; they are rendered verbatim. Image
// payloads are checked later by ExtractAttachments.
func (s Submission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Email, validation.Required, is.EmailFormat, deliverable),
		validation.Field(&s.Products, validation.Required),
	)
}

// deliverable rejects addresses the mail transports would refuse.
var deliverable = validation.NewStringRuleWithError(email.IsValidAddress,
	validation.NewError("validation_is_email", "must be a valid email address"))

// RetainedImages returns the non-nil images in upload order.
func (p Product) RetainedImages() []string {
	out := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img != nil {
			out = append(out, *img)
		}
	}
	return out
}

// ValidationErrors flattens ozzo field errors into field -> message pairs,
// using dotted paths for nested fields.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	flattenValidation("", err, out)
	return out
}

func flattenValidation(prefix string, err error, out map[string]string) {
	var fields validation.Errors
	if errors.As(err, &fields) {
		for name, fieldErr := range fields {
			key := name
			if prefix != "" {
				key = prefix + "." + name
			}
			flattenValidation(key, fieldErr, out)
		}
		return
	}
	if err != nil && prefix != "" {
		out[prefix] = err.Error()
	}
}
