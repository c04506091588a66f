package storefront

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"Storefront/internal/localstore"
	"Storefront/internal/products"
	"Storefront/internal/toast"
)

func TestSearchQueryLoggedOnceSettled(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	store := products.NewStore(nil, localstore.NewMemStore())
	queue := toast.NewQueue()
	t.Cleanup(queue.Close)

	s := NewServer(store, queue, zap.New(core), 20*time.Millisecond)
	h := s.Routes()

	for _, q := range []string{"b", "ba", "bag"} {
		req := httptest.NewRequest(http.MethodPut, "/filters", strings.NewReader(`{"search_query":"`+q+`"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	require.Eventually(t, func() bool {
		return logs.FilterMessage("search query settled").Len() > 0
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	settled := logs.FilterMessage("search query settled").All()
	require.Len(t, settled, 1)
	assert.Equal(t, "bag", settled[0].ContextMap()["query"])
	assert.Equal(t, "bag", store.SearchQuery())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "failed to update product", userMessage(products.ErrUpdate))
	assert.Equal(t, "request failed", userMessage(assert.AnError))
}
