package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func BenchmarkHandleCreateReview(b *testing.B) {
	srv := buildTestServer(b)
	branch := mustCreateBranch(b, srv, "Benchmark", "BEN", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		payload := []byte(fmt.Sprintf(`{"branchId":%q,"rating":4,"content":"bench review %d"}`, branch.ID, i))
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader(payload))
		rec := httptest.NewRecorder()

		srv.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
