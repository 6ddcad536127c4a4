package validation

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/placementhub/internal/analytics"
)

// Validation rule patterns
var (
	// Batch label pattern - admission year and year of passing
	BatchPattern = `^(\d{4})-(\d{4})$`

	// Record identifier pattern - letters, digits, underscore and dash
	IdentifierPattern = `^[A-Za-z0-9_\-]{1,64}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Batch      *regexp.Regexp
	Identifier *regexp.Regexp
}{
	Batch:      regexp.MustCompile(BatchPattern),
	Identifier: regexp.MustCompile(IdentifierPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsBatchLabel reports whether s is "{year}-{year+ProgramYears}".
func IsBatchLabel(s string) bool {
	m := CompiledPatterns.Batch.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return end-start == analytics.ProgramYears
}

// IsIdentifier reports whether s is a usable record identifier.
func IsIdentifier(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Identifier).Validate()
}

var registerOnce sync.Once

// RegisterBindings adds the custom tags to gin's validator. Blank batch
// entries pass; the matcher ignores them.
func RegisterBindings() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("batchlabel", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return s == "" || IsBatchLabel(s)
		})
	})
}
