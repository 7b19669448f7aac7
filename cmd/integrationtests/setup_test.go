package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	bidding "rentbid/internal/biddingService"
	"rentbid/internal/config"
	"rentbid/internal/events"
	"rentbid/internal/identity"
	"rentbid/internal/repository"
	"rentbid/internal/server"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the router with an in-memory store for
// integration testing. The passthrough resolver treats the bearer token as
// the application user ID. The returned service is exposed so tests can
// register auto-bid configs.
func SetupTestRouter() (*gin.Engine, *bidding.BiddingService, *events.ChannelPublisher) {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	publisher := events.NewChannelPublisher(8)
	engineCfg := config.EngineConfig{
		MinIncrementPct:  0.10,
		DefaultMaxRounds: 3,
		CompensationRate: 0.25,
		SweepInterval:    config.Duration{Duration: time.Second},
	}
	service := bidding.NewBiddingService(store, engineCfg, publisher)
	router := server.SetupRouter(service, identity.PassthroughResolver{})
	return router, service, publisher
}

// ExecuteRequestAndParse executes an HTTP request on the given router as the
// given user and parses the JSON response envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, asUser string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set("Authorization", "Bearer "+asUser)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// responseData extracts the data object from the standard response envelope.
func responseData(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return data
}
