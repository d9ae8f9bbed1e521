package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nazeru/contractforge-go/internal/loyalty"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/requestid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireAppErr(t *testing.T, err error) *apperrors.Error {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperrors.As(err)
	require.True(t, ok, "expected *apperrors.Error, got %T", err)
	return ae
}

func TestGetProductRemapsNotFound(t *testing.T) {
	srv := serve(t, http.StatusNotFound, `{"error":"NOT_FOUND","message":"Product with id 'x' not found"}`)
	_, err := NewInventoryClient(srv.URL, srv.Client()).GetProduct(context.Background(), "x")

	ae := requireAppErr(t, err)
	assert.Equal(t, CodeProductNotFound, ae.Code)
	assert.Equal(t, "Product with id 'x' not found", ae.Message)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, apperrors.KindNotFound, ae.Kind)
}

func TestGetUserRemapsNotFound(t *testing.T) {
	srv := serve(t, http.StatusNotFound, `{}`)
	_, err := NewUserClient(srv.URL, srv.Client()).GetUser(context.Background(), "u")

	ae := requireAppErr(t, err)
	assert.Equal(t, CodeUserNotFound, ae.Code)
	assert.Equal(t, "User service request failed", ae.Message)
}

func TestListKeepsServiceNotFoundCode(t *testing.T) {
	srv := serve(t, http.StatusNotFound, `not json`)
	_, err := NewInventoryClient(srv.URL, srv.Client()).ListProducts(context.Background())

	ae := requireAppErr(t, err)
	assert.Equal(t, "INVENTORY_NOT_FOUND", ae.Code)
	assert.Equal(t, "Inventory service request failed", ae.Message)
}

func TestNon404UsesAPIErrorCode(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		wantMsg string
	}{
		{http.StatusInternalServerError, `{"message":"db exploded"}`, "db exploded"},
		{http.StatusBadRequest, `{"error":"VALIDATION_ERROR","message":"basePrice must be a positive number"}`, "basePrice must be a positive number"},
		{http.StatusServiceUnavailable, ``, "Pricing service request failed"},
		{http.StatusBadGateway, `{"message":"   "}`, "Pricing service request failed"},
	}
	for _, tt := range tests {
		srv := serve(t, tt.status, tt.body)
		_, err := NewPricingClient(srv.URL, srv.Client()).GetQuote(context.Background(), QuoteRequest{ProductID: "p", UserID: "u", BasePrice: 10, LoyaltyTier: "GOLD"})

		ae := requireAppErr(t, err)
		assert.Equal(t, CodePricingAPIError, ae.Code)
		assert.Equal(t, tt.wantMsg, ae.Message)
		assert.Equal(t, tt.status, ae.Status)
		assert.Equal(t, apperrors.KindUpstream, ae.Kind)
	}
}

func TestTransportFailureUsesDefaults(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewInventoryClient(url, nil).GetProduct(context.Background(), "p-1")
	ae := requireAppErr(t, err)
	assert.Equal(t, "INVENTORY_API_ERROR", ae.Code)
	assert.Equal(t, "Inventory service request failed", ae.Message)
	assert.Zero(t, ae.Status)
}

func TestTimeoutIsAPIError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	hc := &http.Client{Timeout: 50 * time.Millisecond}
	_, err := NewUserClient(srv.URL, hc).GetUser(context.Background(), "u-1")
	ae := requireAppErr(t, err)
	assert.Equal(t, "USER_API_ERROR", ae.Code)
}

func TestUndecodableSuccessBody(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"id":`)
	_, err := NewInventoryClient(srv.URL, srv.Client()).GetProduct(context.Background(), "p")
	ae := requireAppErr(t, err)
	assert.Equal(t, "INVENTORY_API_ERROR", ae.Code)
}

func TestSuccessDecodesAndForwardsRequestID(t *testing.T) {
	var gotPath, gotQuery, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotReqID = r.Header.Get(requestid.Header)
		_, _ = w.Write([]byte(`{"productId":"p 1","userId":"u","basePrice":99,"discount":25,"finalPrice":74,"currency":"GBP"}`))
	}))
	t.Cleanup(srv.Close)

	ctx := requestid.With(context.Background(), "req-7")
	q, err := NewPricingClient(srv.URL+"/", srv.Client()).GetQuote(ctx, QuoteRequest{ProductID: "p 1", UserID: "u", BasePrice: 99, LoyaltyTier: string(loyalty.Gold)})
	require.NoError(t, err)

	assert.Equal(t, "/pricing/quote", gotPath)
	assert.Contains(t, gotQuery, "basePrice=99")
	assert.Contains(t, gotQuery, "productId=p+1")
	assert.Equal(t, "req-7", gotReqID)
	assert.Equal(t, 74.0, q.FinalPrice)
}

func TestGetProductEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"id":"a/b","name":"n","stock":1,"price":2}`))
	}))
	t.Cleanup(srv.Close)

	p, err := NewInventoryClient(srv.URL, srv.Client()).GetProduct(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/products/a%2Fb", gotPath)
	assert.Equal(t, "a/b", p.ID)
}
