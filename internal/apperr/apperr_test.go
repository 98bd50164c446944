package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindInvalidRequest, http.StatusBadRequest},
		{KindMalformedGeneration, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindGenerationTimeout, http.StatusGatewayTimeout},
		{KindGenerationUpstream, http.StatusBadGateway},
		{KindPersistence, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.kind.Status(); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestFromWrapped(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("save plan: %w", Persistence(cause))

	ae := From(err)
	if ae.Kind != KindPersistence {
		t.Fatalf("kind = %s, want %s", ae.Kind, KindPersistence)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable through chain")
	}
	if !Is(err, KindPersistence) {
		t.Fatalf("Is(KindPersistence) = false")
	}
}

func TestFromUnclassified(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Fatalf("kind = %s, want %s", got, KindInternal)
	}
	if From(nil) != nil {
		t.Fatalf("From(nil) should be nil")
	}
}

func TestNotFoundCarriesNoIdentifiers(t *testing.T) {
	a := NotFound("plan")
	b := NotFound("plan")
	if a.Message != b.Message || a.Detail != "" || a.Fields != nil {
		t.Fatalf("not found errors must be uniform: %+v %+v", a, b)
	}
}
