package inventory

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/contracts"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []contracts.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt contracts.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func newService(seed ...Product) (*Service, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewService(NewStore(seed), pub), pub
}

func TestCreateThenFindDeepEqual(t *testing.T) {
	svc, pub := newService()
	created, err := svc.Create(context.Background(), CreateInput{ID: "p-1", Name: "Lamp", Stock: f(4), Price: f(19.99)})
	require.NoError(t, err)

	got, ok := svc.Find("p-1")
	require.True(t, ok)
	assert.Equal(t, created, got)
	assert.Equal(t, Product{ID: "p-1", Name: "Lamp", Stock: 4, Price: 19.99}, got)
	assert.Equal(t, []string{contracts.EventProductCreated}, pub.types())
}

func TestCreateGeneratesIDWhenOmitted(t *testing.T) {
	svc, _ := newService()
	created, err := svc.Create(context.Background(), CreateInput{Name: "Desk", Stock: f(1), Price: f(100)})
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
		code string
	}{
		{"missing name", CreateInput{ID: "x", Stock: f(1), Price: f(1)}, apperrors.CodeValidation},
		{"missing stock", CreateInput{ID: "x", Name: "n", Price: f(1)}, apperrors.CodeValidation},
		{"missing price", CreateInput{ID: "x", Name: "n", Stock: f(1)}, apperrors.CodeValidation},
		{"negative stock", CreateInput{ID: "x", Name: "n", Stock: f(-1), Price: f(1)}, CodeInvalidStock},
		{"fractional stock", CreateInput{ID: "x", Name: "n", Stock: f(1.5), Price: f(1)}, CodeInvalidStock},
		{"huge stock", CreateInput{ID: "x", Name: "n", Stock: f(1e20), Price: f(1)}, CodeInvalidStock},
		{"stock past int32", CreateInput{ID: "x", Name: "n", Stock: f(math.MaxInt32 + 1), Price: f(1)}, CodeInvalidStock},
		{"zero price", CreateInput{ID: "x", Name: "n", Stock: f(0), Price: f(0)}, CodeInvalidPrice},
		{"negative price", CreateInput{ID: "x", Name: "n", Stock: f(0), Price: f(-3)}, CodeInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub := newService()
			_, err := svc.Create(context.Background(), tt.in)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
			assert.Empty(t, svc.List())
			assert.Empty(t, pub.types())
		})
	}
}

func TestCreateLargestStock(t *testing.T) {
	svc, _ := newService()
	p, err := svc.Create(context.Background(), CreateInput{ID: "big", Name: "Big", Stock: f(math.MaxInt32), Price: f(5)})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, p.Stock)
}

func TestCreateDuplicate(t *testing.T) {
	seed := Product{ID: "p-1", Name: "Lamp", Stock: 1, Price: 10}
	svc, _ := newService(seed)

	_, err := svc.Create(context.Background(), CreateInput{ID: "p-1", Name: "Other", Stock: f(2), Price: f(5)})
	assert.Equal(t, apperrors.CodeAlreadyExists, apperrors.CodeOf(err))
	assert.Equal(t, []Product{seed}, svc.List())
}

func TestUpdatePartialMergeKeepsOtherFields(t *testing.T) {
	svc, pub := newService(Product{ID: "a", Name: "A", Stock: 1, Price: 10}, Product{ID: "b", Name: "B", Stock: 2, Price: 20})

	updated, err := svc.Update(context.Background(), "a", UpdateInput{Stock: f(7)})
	require.NoError(t, err)
	assert.Equal(t, Product{ID: "a", Name: "A", Stock: 7, Price: 10}, updated)
	assert.Equal(t, []string{"a", "b"}, ids(svc.List()))
	assert.Equal(t, []string{contracts.EventProductUpdated}, pub.types())
}

func TestUpdateInvalidDoesNotMutate(t *testing.T) {
	orig := Product{ID: "a", Name: "A", Stock: 1, Price: 10}
	tests := []struct {
		in   UpdateInput
		code string
	}{
		{UpdateInput{Name: s("Renamed"), Stock: f(-2)}, CodeInvalidStock},
		{UpdateInput{Stock: f(2.25)}, CodeInvalidStock},
		{UpdateInput{Stock: f(1e20)}, CodeInvalidStock},
		{UpdateInput{Name: s("Renamed"), Price: f(0)}, CodeInvalidPrice},
		{UpdateInput{Name: s("  ")}, apperrors.CodeValidation},
	}
	for _, tt := range tests {
		svc, _ := newService(orig)
		_, err := svc.Update(context.Background(), "a", tt.in)
		assert.Equal(t, tt.code, apperrors.CodeOf(err))
		got, _ := svc.Find("a")
		assert.Equal(t, orig, got)
	}
}

func TestUpdateMissing(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Update(context.Background(), "nope", UpdateInput{Stock: f(1)})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestDeleteOnce(t *testing.T) {
	svc, pub := newService(Product{ID: "a", Name: "A", Stock: 1, Price: 1})

	require.NoError(t, svc.Delete(context.Background(), "a"))
	_, ok := svc.Find("a")
	assert.False(t, ok)

	err := svc.Delete(context.Background(), "a")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	assert.Equal(t, []string{contracts.EventProductDeleted}, pub.types())
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewService(NewStore(nil), pub)

	_, err := svc.Create(context.Background(), CreateInput{ID: "x", Name: "n", Stock: f(0), Price: f(1)})
	require.NoError(t, err)
	_, ok := svc.Find("x")
	assert.True(t, ok)
}

func TestConcurrentUpdatesLastEventMatchesStore(t *testing.T) {
	svc, pub := newService(Product{ID: "a", Name: "A", Stock: 0, Price: 1})
	var wg sync.WaitGroup
	for i := 1; i <= 30; i++ {
		wg.Add(1)
		go func(stock float64) {
			defer wg.Done()
			_, err := svc.Update(context.Background(), "a", UpdateInput{Stock: f(stock)})
			assert.NoError(t, err)
		}(float64(i))
	}
	wg.Wait()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.events, 30)
	last, ok := pub.events[len(pub.events)-1].Payload.(Product)
	require.True(t, ok)
	got, _ := svc.Find("a")
	assert.Equal(t, got, last)
}

func TestResetRestoresSeed(t *testing.T) {
	svc, _ := newService(Product{ID: "a", Name: "A", Stock: 1, Price: 1})
	require.NoError(t, svc.Delete(context.Background(), "a"))
	svc.Reset()
	assert.Equal(t, []string{"a"}, ids(svc.List()))
}

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
