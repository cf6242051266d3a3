package scenario

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenariosJSON = `[
  {
    "scenarioName": "multi-line 15% tier",
    "customerId": 1,
    "lines": [
      {"productId": 1, "quantity": 2, "unitPrice": 1299.99},
      {"productId": 2, "quantity": 2, "unitPrice": "29.99"},
      {"productId": 3, "quantity": 1, "unitPrice": 149.99}
    ]
  },
  {
    "scenarioName": "everything wrong",
    "customerId": null,
    "lines": [
      {"productId": null, "quantity": -1, "unitPrice": -10.00}
    ]
  }
]`

func ptr[T any](v T) *T { return &v }

func TestDecodeAndRun(t *testing.T) {
	inputs, err := Decode(strings.NewReader(scenariosJSON))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	outputs := Run(inputs)
	require.Len(t, outputs, 2)

	assert.Equal(t, ptr("multi-line 15% tier"), outputs[0].ScenarioName)
	assert.Equal(t, Result{
		Discount: "421.49",
		Subtotal: "2809.95",
		Tax:      "357.67",
		Total:    "2746.13",
	}, outputs[0].Result)
	assert.Empty(t, outputs[0].ValidationErrors)

	assert.Equal(t, []string{
		"Customer is required",
		"Line 1: Quantity must be positive",
		"Line 1: Unit price must be zero or greater",
		"Line 1: Product is required",
	}, outputs[1].ValidationErrors)
	assert.Equal(t, "10.00", outputs[1].Result.Subtotal)
}

func TestEvaluate_NoLines(t *testing.T) {
	id := int64(5)
	out := Evaluate(Input{ScenarioName: ptr("empty"), CustomerID: &id})

	assert.Equal(t, Result{Discount: "0.00", Subtotal: "0.00", Tax: "0.00", Total: "0.00"}, out.Result)
	assert.Equal(t, []string{"Order must have at least one line item"}, out.ValidationErrors)
}

func TestEvaluate_MissingUnitPrice(t *testing.T) {
	id := int64(1)
	out := Evaluate(Input{
		ScenarioName: ptr("no price"),
		CustomerID:   &id,
		Lines:        []InputLine{{ProductID: &id, Quantity: 1}},
	})

	assert.Equal(t, []string{"Line 1: Unit price must be zero or greater"}, out.ValidationErrors)
}

func TestRun_ZeroIDsArePresent(t *testing.T) {
	inputs, err := Decode(strings.NewReader(`[{
		"scenarioName": "zero ids",
		"customerId": 0,
		"lines": [{"productId": 0, "quantity": 1, "unitPrice": "10.00"}]
	}]`))
	require.NoError(t, err)

	outputs := Run(inputs)
	require.Len(t, outputs, 1)
	assert.Empty(t, outputs[0].ValidationErrors)
	assert.Equal(t, "10.00", outputs[0].Result.Subtotal)

	o := BuildOrder(inputs[0])
	require.NotNil(t, o.CustomerID)
	assert.Zero(t, *o.CustomerID)
	assert.Equal(t, "Product 0", o.Lines[0].ProductName)
}

func TestDecode_Strict(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
	}{
		{name: "UnknownField", input: `[{"scenarioName": "x", "customerId": 1, "lines": [], "coupon": "X"}]`},
		{name: "UnknownLineField", input: `[{"scenarioName": "x", "lines": [{"productId": 1, "qty": 1}]}]`},
		{name: "TrailingData", input: `[] []`},
		{name: "NotArray", input: `{"scenarioName": "x"}`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	inputs, err := Decode(strings.NewReader("[]\n"))
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestBuildOrder(t *testing.T) {
	id := int64(7)
	o := BuildOrder(Input{
		CustomerID: &id,
		Lines:      []InputLine{{ProductID: &id, Quantity: 3}},
	})

	require.NotNil(t, o.CustomerID)
	assert.Equal(t, int64(7), *o.CustomerID)
	assert.Equal(t, CustomerName, o.CustomerName)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, "Product 7", o.Lines[0].ProductName)
	assert.Nil(t, o.Lines[0].UnitPrice)
}

func TestEncode(t *testing.T) {
	outputs := []Output{
		{
			ScenarioName: ptr("valid"),
			Result:       Result{Discount: "100.00", Subtotal: "1000.00", Tax: "134.78", Total: "1034.78"},
		},
		{
			ScenarioName:     ptr("invalid"),
			Result:           Result{Discount: "0.00", Subtotal: "0.00", Tax: "0.00", Total: "0.00"},
			ValidationErrors: []string{"Customer is required"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, outputs))
	got := buf.String()

	assert.JSONEq(t, `[
		{
			"result": {"discount": "100.00", "subtotal": "1000.00", "tax": "134.78", "total": "1034.78"},
			"scenarioName": "valid"
		},
		{
			"result": {"discount": "0.00", "subtotal": "0.00", "tax": "0.00", "total": "0.00"},
			"scenarioName": "invalid",
			"validationErrors": ["Customer is required"]
		}
	]`, got)

	// Keys appear in lexicographic order.
	keys := []string{`"result"`, `"discount"`, `"subtotal"`, `"tax"`, `"total"`, `"scenarioName"`}
	last := -1
	for _, key := range keys {
		idx := strings.Index(got, key)
		require.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
	assert.Less(t, strings.Index(got, `"invalid"`), strings.Index(got, `"validationErrors"`))
	assert.Equal(t, 1, strings.Count(got, `"validationErrors"`))
	assert.Contains(t, got, "\n")
}

func TestEncode_NullName(t *testing.T) {
	inputs, err := Decode(strings.NewReader(`[{"customerId": 1, "lines": []}]`))
	require.NoError(t, err)
	require.Nil(t, inputs[0].ScenarioName)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Run(inputs)))
	assert.JSONEq(t, `[{
		"result": {"discount": "0.00", "subtotal": "0.00", "tax": "0.00", "total": "0.00"},
		"scenarioName": null,
		"validationErrors": ["Order must have at least one line item"]
	}]`, buf.String())
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(plain, []byte(scenariosJSON), 0o644))

	var gzBuf bytes.Buffer
	gz := pgzip.NewWriter(&gzBuf)
	_, err := gz.Write([]byte(`[{"scenarioName": "compressed", "customerId": 1, "lines": []}]`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	compressed := filepath.Join(dir, "b.json.gz")
	require.NoError(t, os.WriteFile(compressed, gzBuf.Bytes(), 0o644))

	inputs, err := LoadFiles(context.Background(), compressed, plain)
	require.NoError(t, err)

	require.Len(t, inputs, 3)
	assert.Equal(t, ptr("compressed"), inputs[0].ScenarioName)
	assert.Equal(t, ptr("multi-line 15% tier"), inputs[1].ScenarioName)
	assert.Equal(t, ptr("everything wrong"), inputs[2].ScenarioName)
}

func TestLoadFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{not json`), 0o644))

	_, err := LoadFiles(context.Background(), broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")

	_, err = LoadFiles(context.Background(), filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}
