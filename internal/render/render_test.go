package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artpar/pmctl/internal/postman"
)

func TestMethod(t *testing.T) {
	t.Run("known methods keep fixed width", func(t *testing.T) {
		for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
			assert.Contains(t, Method(m), m)
		}
	})

	t.Run("unknown method renders plain", func(t *testing.T) {
		assert.Equal(t, "BREW   ", Method("BREW"))
	})
}

func TestCollectionTree(t *testing.T) {
	col := &postman.Collection{
		Info: postman.CollectionInfo{Name: "Orders API"},
		Items: []postman.Item{
			{
				Name: "Auth",
				Items: []postman.Item{
					{
						Name: "Login",
						Request: &postman.RequestSpec{
							Method: "POST",
							URL:    postman.URL{Raw: "https://api.example.com/login"},
						},
					},
				},
			},
			{
				Name: "Health",
				Request: &postman.RequestSpec{
					Method: "GET",
					URL: postman.URL{
						Protocol: "https",
						Host:     []string{"api", "example", "com"},
						Path:     []string{"health"},
					},
				},
			},
		},
	}

	out := CollectionTree(col)
	assert.Contains(t, out, "Orders API")
	assert.Contains(t, out, "Auth")
	assert.Contains(t, out, "Login")
	assert.Contains(t, out, "https://api.example.com/login")
	// Structured URL without raw falls back to assembled parts.
	assert.Contains(t, out, "https://api.example.com/health")
}

func TestCollectionTree_EmptyName(t *testing.T) {
	out := CollectionTree(&postman.Collection{})
	assert.Contains(t, out, "Collection")
}

func TestTable(t *testing.T) {
	out := Table("Workspaces (work)", []string{"NAME", "ID"}, [][]string{
		{"Team", "ws-1"},
		{"Personal", "ws-2"},
	})
	assert.Contains(t, out, "Workspaces (work)")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "ws-2")
}

func TestRequestDetail(t *testing.T) {
	enabled := postman.Item{
		Name: "Create Order",
		Request: &postman.RequestSpec{
			Method:      "POST",
			Description: "Creates one order",
			URL: postman.URL{
				Raw:      "https://api.example.com/orders/:id?dry_run=true",
				Query:    []postman.QueryParam{{Key: "dry_run", Value: "true"}},
				Variable: []postman.PathVariable{{Key: "id", Value: "42"}},
			},
			Header: []postman.KeyValue{
				{Key: "Content-Type", Value: "application/json"},
				{Key: "X-Debug", Value: "1", Disabled: true},
			},
			Body: &postman.Body{Mode: "raw", Raw: `{"sku": "A-1"}`},
		},
	}

	out := RequestDetail("Orders/Create Order", enabled)
	assert.Contains(t, out, "Orders/Create Order")
	assert.Contains(t, out, "https://api.example.com/orders/:id?dry_run=true")
	assert.Contains(t, out, "Creates one order")
	assert.Contains(t, out, "Content-Type: application/json")
	assert.NotContains(t, out, "X-Debug", "disabled headers are hidden")
	assert.Contains(t, out, "dry_run=true")
	assert.Contains(t, out, ":id = 42")
	assert.Contains(t, out, `{"sku": "A-1"}`)
}
