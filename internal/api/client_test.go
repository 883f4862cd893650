package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"dealdesk/internal/contract"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := New(server.URL, 5*time.Second, zap.NewNop())
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func TestListContractsDecodesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/contracts", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]contract.Contract{
			{ID: "c1", CreatorID: "u113", BrandID: "u114", Status: contract.StatusActive},
		})
	}))

	contracts, err := client.ListContracts(context.Background(), ContractQuery{Status: contract.StatusActive})
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "c1", contracts[0].ID)
}

func TestServerErrorCarriesDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "generation model offline"})
	}))

	_, err := client.Generate(context.Background(), map[string]any{"creator_id": "u113"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.True(t, apiErr.ServerError())
	assert.Equal(t, "generation model offline", apiErr.Message())
	assert.False(t, Unavailable(err))
}

func TestServerErrorWithoutBodyIsGeneric(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.GetContract(context.Background(), "c1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Detail)
	assert.Contains(t, apiErr.Message(), "internal error")
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close() // nothing listening any more

	client := New(url, time.Second, zap.NewNop())
	defer client.Close()

	_, err := client.ListContracts(context.Background(), ContractQuery{})
	require.Error(t, err)
	assert.True(t, Unavailable(err))

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failure must not be an APIError")
}

func TestCreateContractSendsPayload(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(contract.Contract{ID: "c9"})
	}))

	created, err := client.CreateContract(context.Background(), map[string]any{
		"creator_id":    "u113",
		"brand_id":      "u114",
		"contract_type": "one_time",
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
	assert.Equal(t, "u113", received["creator_id"])
}

func TestPostUpdateEvent(t *testing.T) {
	var received contract.UpdateEvent
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contracts/c3/updates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))

	ev, err := contract.Update{Status: contract.StatusActive}.BuildEvent("c3", "casey", time.Now())
	require.NoError(t, err)
	require.NoError(t, client.PostUpdateEvent(context.Background(), ev))
	assert.Equal(t, "casey", received.Actor)
	assert.Equal(t, "active", received.Changes["status"])
}

func TestTemplateCRUD(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /contracts/templates":
			json.NewEncoder(w).Encode(contract.Template{ID: "t1", Name: "Starter"})
		case "GET /contracts/templates/t1":
			json.NewEncoder(w).Encode(contract.Template{ID: "t1", Name: "Starter", ContractType: contract.TypeOneTime})
		case "PUT /contracts/templates/t1":
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			json.NewEncoder(w).Encode(contract.Template{ID: "t1", Name: payload["name"].(string)})
		case "DELETE /contracts/templates/t1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	created, err := client.CreateTemplate(ctx, map[string]any{"name": "Starter", "contract_type": "one_time"})
	require.NoError(t, err)
	assert.Equal(t, "t1", created.ID)

	got, err := client.GetTemplate(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, contract.TypeOneTime, got.ContractType)

	updated, err := client.UpdateTemplate(ctx, "t1", map[string]any{"name": "Starter v2"})
	require.NoError(t, err)
	assert.Equal(t, "Starter v2", updated.Name)

	require.NoError(t, client.DeleteTemplate(ctx, "t1"))
}

func TestMilestoneCRUD(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /contracts/c1/milestones":
			json.NewEncoder(w).Encode(contract.Milestone{ID: "m1", ContractID: "c1", Title: "Kickoff"})
		case "GET /contracts/c1/milestones/m1":
			json.NewEncoder(w).Encode(contract.Milestone{ID: "m1", ContractID: "c1", Status: "pending"})
		case "PUT /contracts/c1/milestones/m1":
			json.NewEncoder(w).Encode(contract.Milestone{ID: "m1", ContractID: "c1", Status: "done"})
		case "DELETE /contracts/c1/milestones/m1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	created, err := client.CreateMilestone(ctx, "c1", map[string]any{"title": "Kickoff"})
	require.NoError(t, err)
	assert.Equal(t, "m1", created.ID)

	got, err := client.GetMilestone(ctx, "c1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)

	updated, err := client.UpdateMilestone(ctx, "c1", "m1", map[string]any{"status": "done"})
	require.NoError(t, err)
	assert.Equal(t, "done", updated.Status)

	require.NoError(t, client.DeleteMilestone(ctx, "c1", "m1"))
}

func TestDeliverableCRUD(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /contracts/c1/deliverables":
			json.NewEncoder(w).Encode(contract.Deliverable{ID: "d1", ContractID: "c1", Platform: "instagram"})
		case "GET /contracts/c1/deliverables/d1":
			json.NewEncoder(w).Encode(contract.Deliverable{ID: "d1", ContractID: "c1", Quantity: 3})
		case "PUT /contracts/c1/deliverables/d1":
			json.NewEncoder(w).Encode(contract.Deliverable{ID: "d1", ContractID: "c1", Quantity: 5})
		case "DELETE /contracts/c1/deliverables/d1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	created, err := client.CreateDeliverable(ctx, "c1", map[string]any{"platform": "instagram", "content_type": "reel"})
	require.NoError(t, err)
	assert.Equal(t, "instagram", created.Platform)

	got, err := client.GetDeliverable(ctx, "c1", "d1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	updated, err := client.UpdateDeliverable(ctx, "c1", "d1", map[string]any{"quantity": 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	require.NoError(t, client.DeleteDeliverable(ctx, "c1", "d1"))
}

func TestPaymentCRUD(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /contracts/c1/payments":
			json.NewEncoder(w).Encode(contract.Payment{ID: "p1", ContractID: "c1", Amount: 750})
		case "PUT /contracts/c1/payments/p1":
			json.NewEncoder(w).Encode(contract.Payment{ID: "p1", ContractID: "c1", Status: "paid"})
		case "DELETE /contracts/c1/payments/p1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	created, err := client.CreatePayment(ctx, "c1", map[string]any{"amount": 750})
	require.NoError(t, err)
	assert.Equal(t, 750.0, created.Amount)

	updated, err := client.UpdatePayment(ctx, "c1", "p1", map[string]any{"status": "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)

	require.NoError(t, client.DeletePayment(ctx, "c1", "p1"))
}

func TestCommentUpdateAndDelete(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "PUT /contracts/c1/comments/cm1":
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			json.NewEncoder(w).Encode(contract.Comment{ID: "cm1", ContractID: "c1", Body: payload["body"].(string)})
		case "DELETE /contracts/c1/comments/cm1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	updated, err := client.UpdateComment(ctx, "c1", "cm1", "revised note")
	require.NoError(t, err)
	assert.Equal(t, "revised note", updated.Body)

	require.NoError(t, client.DeleteComment(ctx, "c1", "cm1"))
}

func TestChatRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contracts/ai/chat", r.URL.Path)
		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "c1", req.ContractID)
		json.NewEncoder(w).Encode(ChatResponse{
			Reply:       "Looks solid.",
			Suggestions: []string{"review payment terms"},
		})
	}))

	resp, err := client.Chat(context.Background(), ChatRequest{Query: "is this contract ok?", ContractID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "Looks solid.", resp.Reply)
	assert.Equal(t, []string{"review payment terms"}, resp.Suggestions)
}

func TestPricingRecommendation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pricing/recommendation", r.URL.Path)
		json.NewEncoder(w).Encode(PricingResponse{RecommendedPrice: 2000})
	}))

	resp, err := client.PricingRecommendation(context.Background(), PricingRequest{CreatorID: "u113", BrandID: "u114"})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, resp.RecommendedPrice)
}

func TestDeleteContract(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/contracts/c4", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteContract(context.Background(), "c4"))
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.ListContracts(ctx, ContractQuery{})
	require.Error(t, err)
	assert.True(t, Unavailable(err))
}
