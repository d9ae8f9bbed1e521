package inventory

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nazeru/contractforge-go/pkg/apperrors"
)

const (
	CodeInvalidStock = "INVALID_STOCK"
	CodeInvalidPrice = "INVALID_PRICE"
)

type Product struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Stock int     `json:"stock" yaml:"stock"`
	Price float64 `json:"price" yaml:"price"`
}

func ProductKey(p Product) string { return p.ID }

// CreateInput is decoded from POST /products. Numbers arrive as float64 so
// a fractional stock can be rejected instead of silently truncated.
type CreateInput struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Stock *float64 `json:"stock"`
	Price *float64 `json:"price"`
}

type UpdateInput struct {
	Name  *string  `json:"name"`
	Stock *float64 `json:"stock"`
	Price *float64 `json:"price"`
}

func (in CreateInput) product() (Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Stock == nil || in.Price == nil {
		return Product{}, apperrors.Invalid(apperrors.CodeValidation, "name, stock and price are required")
	}
	if err := validateStock(*in.Stock); err != nil {
		return Product{}, err
	}
	if err := validatePrice(*in.Price); err != nil {
		return Product{}, err
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return Product{ID: id, Name: name, Stock: int(*in.Stock), Price: *in.Price}, nil
}

// apply merges the supplied fields over p, validating each touched field.
func (in UpdateInput) apply(p Product) (Product, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Product{}, apperrors.Invalid(apperrors.CodeValidation, "name cannot be empty")
		}
		p.Name = name
	}
	if in.Stock != nil {
		if err := validateStock(*in.Stock); err != nil {
			return Product{}, err
		}
		p.Stock = int(*in.Stock)
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return Product{}, err
		}
		p.Price = *in.Price
	}
	return p, nil
}

// maxStock keeps the float to int conversion exact on every platform.
const maxStock = math.MaxInt32

func validateStock(v float64) error {
	if v < 0 || v > maxStock || !isWhole(v) {
		return apperrors.Invalid(CodeInvalidStock, "stock must be an integer between 0 and "+strconv.Itoa(maxStock))
	}
	return nil
}

// isWhole reports whether v is a finite integral value.
func isWhole(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && math.Trunc(v) == v
}

func validatePrice(v float64) error {
	if !(v > 0) {
		return apperrors.Invalid(CodeInvalidPrice, "price must be greater than 0")
	}
	return nil
}
