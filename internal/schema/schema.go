// Package schema defines the insert and partial-update payload shapes for
// every entity, together with their validation rules. Validation is built on
// go-playground/validator (the same engine gin binds with) but always reports
// the full set of offending fields, not just the first, so the admin form can
// highlight everything at once.
//
// Insert payloads exclude server-assigned fields (id, createdAt, isRead) and
// apply defaults for omitted optional fields. Update payloads use pointer
// fields: nil means "leave unchanged", a non-nil value is validated like its
// insert counterpart.
package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
)

// FieldError describes a single invalid field in a payload.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError enumerates every offending field of a payload. It is
// returned by the Validate methods below and maps to HTTP 400 at the
// handler layer.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface, joining all field reasons.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// decimalRE matches non-negative decimal strings with at most two fraction
// digits, the format used for weights (grams).
var decimalRE = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// rateRE is the looser variant for exchange rates, which carry up to four
// fraction digits.
var rateRE = regexp.MustCompile(`^\d+(\.\d{1,4})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	must(v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.ValidCategory(fl.Field().String())
	}))
	must(v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		return decimalRE.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("rate", func(fl validator.FieldLevel) bool {
		return rateRE.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("flag", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == domain.FlagTrue || s == domain.FlagFalse
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// check runs the validator on payload and converts the result into a
// *ValidationError listing every invalid field.
func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:  fe.Field(),
			Reason: reason(fe),
		})
	}
	return out
}

// reason maps a validator tag to a human-readable message.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "category":
		return "must be one of: " + strings.Join(domain.Categories, ", ")
	case "decimal":
		return "must be a decimal string like \"5.00\" (max 2 fraction digits)"
	case "rate":
		return "must be a decimal string like \"28.5000\" (max 4 fraction digits)"
	case "flag":
		return `must be "true" or "false"`
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be >= " + fe.Param()
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

//
// Products
//

// InsertProduct is the caller-supplied shape for creating a product.
// IsActive and HasWorkmanship default to "true" when omitted.
type InsertProduct struct {
	Name           string `json:"name"           validate:"required,max=255"`
	Category       string `json:"category"       validate:"required,category"`
	Weight         string `json:"weight"         validate:"required,decimal"`
	GoldKarat      int    `json:"goldKarat"      validate:"required,oneof=14 18 22"`
	ImageURL       string `json:"imageUrl"       validate:"required"`
	IsActive       string `json:"isActive"       validate:"omitempty,flag"`
	HasWorkmanship string `json:"hasWorkmanship" validate:"omitempty,flag"`
}

// Validate checks the payload and returns a normalized copy with defaults
// applied, or a *ValidationError listing every invalid field.
func (p InsertProduct) Validate() (InsertProduct, error) {
	if err := check(p); err != nil {
		return InsertProduct{}, err
	}
	if p.IsActive == "" {
		p.IsActive = domain.FlagTrue
	}
	if p.HasWorkmanship == "" {
		p.HasWorkmanship = domain.FlagTrue
	}
	return p, nil
}

// UpdateProduct is the partial-update shape for products. Nil fields are
// left unchanged.
type UpdateProduct struct {
	Name           *string `json:"name"           validate:"omitnil,min=1,max=255"`
	Category       *string `json:"category"       validate:"omitnil,category"`
	Weight         *string `json:"weight"         validate:"omitnil,decimal"`
	GoldKarat      *int    `json:"goldKarat"      validate:"omitnil,oneof=14 18 22"`
	ImageURL       *string `json:"imageUrl"       validate:"omitnil,min=1"`
	IsActive       *string `json:"isActive"       validate:"omitnil,flag"`
	HasWorkmanship *string `json:"hasWorkmanship" validate:"omitnil,flag"`
}

// Validate checks whichever fields are present.
func (p UpdateProduct) Validate() error { return check(p) }

// Apply merges the supplied fields onto dst.
func (p UpdateProduct) Apply(dst *domain.Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Weight != nil {
		dst.Weight = *p.Weight
	}
	if p.GoldKarat != nil {
		dst.GoldKarat = *p.GoldKarat
	}
	if p.ImageURL != nil {
		dst.ImageURL = *p.ImageURL
	}
	if p.IsActive != nil {
		dst.IsActive = *p.IsActive
	}
	if p.HasWorkmanship != nil {
		dst.HasWorkmanship = *p.HasWorkmanship
	}
}

//
// Users
//

// InsertUser is the caller-supplied shape for creating an admin user.
// Password is plaintext here; the auth service hashes it before it reaches
// storage. Role defaults to "admin".
type InsertUser struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin"`
}

// Validate checks the payload and applies the role default.
func (u InsertUser) Validate() (InsertUser, error) {
	if err := check(u); err != nil {
		return InsertUser{}, err
	}
	if u.Role == "" {
		u.Role = "admin"
	}
	return u, nil
}

//
// Singletons
//

// UpdateContactInfo is the merge payload for the contact singleton.
type UpdateContactInfo struct {
	Address      *string `json:"address"      validate:"omitnil,min=1"`
	Phone        *string `json:"phone"        validate:"omitnil,min=1,max=64"`
	WorkingHours *string `json:"workingHours" validate:"omitnil,min=1,max=255"`
}

// Validate checks whichever fields are present.
func (p UpdateContactInfo) Validate() error { return check(p) }

// Apply merges the supplied fields onto dst.
func (p UpdateContactInfo) Apply(dst *domain.ContactInfo) {
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
	if p.WorkingHours != nil {
		dst.WorkingHours = *p.WorkingHours
	}
}

// UpdateAboutInfo is the merge payload for the about singleton.
type UpdateAboutInfo struct {
	Title           *string `json:"title"           validate:"omitnil,min=1,max=255"`
	Description     *string `json:"description"     validate:"omitnil,min=1"`
	ExperienceYears *int    `json:"experienceYears" validate:"omitnil,gte=0"`
	CustomerCount   *int    `json:"customerCount"   validate:"omitnil,gte=0"`
	ImageURL        *string `json:"imageUrl"        validate:"omitnil,min=1"`
}

// Validate checks whichever fields are present.
func (p UpdateAboutInfo) Validate() error { return check(p) }

// Apply merges the supplied fields onto dst.
func (p UpdateAboutInfo) Apply(dst *domain.AboutInfo) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.ExperienceYears != nil {
		dst.ExperienceYears = *p.ExperienceYears
	}
	if p.CustomerCount != nil {
		dst.CustomerCount = *p.CustomerCount
	}
	if p.ImageURL != nil {
		dst.ImageURL = *p.ImageURL
	}
}

// UpdateHomepageInfo is the merge payload for the homepage singleton.
type UpdateHomepageInfo struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	ImageURL    *string `json:"imageUrl"    validate:"omitnil,min=1"`
}

// Validate checks whichever fields are present.
func (p UpdateHomepageInfo) Validate() error { return check(p) }

// Apply merges the supplied fields onto dst.
func (p UpdateHomepageInfo) Apply(dst *domain.HomepageInfo) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.ImageURL != nil {
		dst.ImageURL = *p.ImageURL
	}
}

//
// Messages
//

// InsertMessage is the public contact-form payload. CreatedAt and IsRead
// are server-assigned.
type InsertMessage struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Phone   string `json:"phone"   validate:"required,max=64"`
	Message string `json:"message" validate:"required,max=4000"`
}

// Validate checks the payload.
func (m InsertMessage) Validate() (InsertMessage, error) {
	if err := check(m); err != nil {
		return InsertMessage{}, err
	}
	return m, nil
}

//
// Exchange rates
//

// UpdateExchangeRate carries a new rate for a currency (upsert).
type UpdateExchangeRate struct {
	Rate string `json:"rate" validate:"required,rate"`
}

// Validate checks the payload.
func (r UpdateExchangeRate) Validate() error { return check(r) }
