package reports

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// Schema describes the JSON document produced for kind. Amounts are
// decimal strings.
func Schema(kind Kind) (*jsonschema.Schema, error) {
	var v Result
	switch kind {
	case KindJournal:
		v = Journal{}
	case KindGeneralLedger:
		v = GeneralLedger{}
	case KindTrialBalance:
		v = TrialBalance{}
	case KindIncomeStatement:
		v = IncomeStatement{}
	case KindBalanceSheet:
		v = BalanceSheet{}
	case KindCashFlow:
		v = CashFlow{}
	case KindARSummary:
		v = ARSummary{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == decimalType {
				return &jsonschema.Schema{Type: "string", Pattern: `^-?[0-9]+(\.[0-9]+)?$`}
			}
			return nil
		},
	}
	return reflector.Reflect(v), nil
}
