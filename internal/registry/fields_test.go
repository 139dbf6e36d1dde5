package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/policy-extract/internal/model"
)

func TestProduction_FifteenFieldsInOrder(t *testing.T) {
	reg := Production()
	require.Equal(t, 15, reg.Len())

	keys := make([]string, 0, reg.Len())
	for _, f := range reg.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		"policy_no", "insured_name", "insurer_name", "engine_no", "chassis_no",
		"cheque_no", "cheque_date", "bank_name", "net_od_premium",
		"net_liability_premium", "total_premium", "gst_amount", "gross_premium",
		"car_model", "body_type",
	}, keys)
}

func TestProduction_EveryFieldHasAliases(t *testing.T) {
	for _, f := range Production().Fields {
		assert.NotEmpty(t, f.Aliases, f.Key)
		assert.NotEmpty(t, f.DisplayName, f.Key)
		assert.NotEmpty(t, string(f.ValueType), f.Key)
	}
}

func TestProduction_MonetaryFields(t *testing.T) {
	monetary := 0
	for _, f := range Production().Fields {
		if f.ValueType == model.TypeMonetary {
			monetary++
		}
	}
	assert.Equal(t, 5, monetary)
}

func TestLoadFieldsFromFile_Missing(t *testing.T) {
	_, err := LoadFieldsFromFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoadBoundsFromFile_Missing(t *testing.T) {
	_, err := LoadBoundsFromFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}
