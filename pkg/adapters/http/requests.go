package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// validate is a singleton validator instance
var validate = validator.New()

// errInvalidRequest marks request bodies that decode but fail validation.
var errInvalidRequest = errors.New("invalid request")

// ProbabilityRequest is the body of POST /query.
// Either Text (the "P(Q=q|E=e) H1-H2" syntax) or the structured fields must be given.
type ProbabilityRequest struct {
	Text     string            `json:"text,omitempty" validate:"required_without=Variable"`
	Variable string            `json:"variable,omitempty" validate:"required_without=Text,excluded_with=Text"`
	Value    string            `json:"value,omitempty" validate:"required_with=Variable"`
	Evidence map[string]string `json:"evidence,omitempty" validate:"omitempty,dive,keys,required,endkeys,required"`
	Order    []string          `json:"order,omitempty" validate:"omitempty,dive,required"`
}

// IndependenceRequest is the body of POST /independence.
// Either Text (the "A-B|E=e" syntax) or A and B must be given.
type IndependenceRequest struct {
	Text     string            `json:"text,omitempty" validate:"required_without=A"`
	A        string            `json:"a,omitempty" validate:"required_without=Text,excluded_with=Text"`
	B        string            `json:"b,omitempty" validate:"required_with=A"`
	Evidence map[string]string `json:"evidence,omitempty" validate:"omitempty,dive,keys,required,endkeys,required"`
}

// ProbabilityResponse is returned by POST /query.
type ProbabilityResponse struct {
	RequestID       string  `json:"request_id"`
	Query           string  `json:"query"`
	Probability     float64 `json:"probability"`
	Additions       int     `json:"additions"`
	Multiplications int     `json:"multiplications"`
}

// IndependenceResponse is returned by POST /independence.
type IndependenceResponse struct {
	RequestID   string `json:"request_id"`
	Query       string `json:"query"`
	Independent bool   `json:"independent"`
	Answer      string `json:"answer"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

// NetworkResponse is returned by GET /network.
type NetworkResponse struct {
	Name      string              `json:"name"`
	Variables []domain.Definition `json:"variables"`
}

func (req *ProbabilityRequest) toDomain() (domain.ProbabilityQuery, error) {
	if err := validate.Struct(req); err != nil {
		return domain.ProbabilityQuery{}, formatValidationError(err)
	}
	if req.Text != "" {
		return query.ParseProbability(req.Text)
	}
	return domain.ProbabilityQuery{
		Variable: req.Variable,
		Value:    req.Value,
		Evidence: domain.Evidence(req.Evidence),
		Order:    req.Order,
	}, nil
}

func (req *IndependenceRequest) toDomain() (domain.IndependenceQuery, error) {
	if err := validate.Struct(req); err != nil {
		return domain.IndependenceQuery{}, formatValidationError(err)
	}
	if req.Text != "" {
		return query.ParseIndependence(req.Text)
	}
	return domain.IndependenceQuery{
		A:        req.A,
		B:        req.B,
		Evidence: domain.Evidence(req.Evidence),
	}, nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required", "required_without", "required_with":
			return fmt.Errorf("%w: %s: field is required", errInvalidRequest, field)
		case "excluded_with":
			return fmt.Errorf("%w: %s: cannot be combined with text", errInvalidRequest, field)
		default:
			return fmt.Errorf("%w: %s: validation failed (%s)", errInvalidRequest, field, e.Tag())
		}
	}
	return fmt.Errorf("%w: %v", errInvalidRequest, err)
}
