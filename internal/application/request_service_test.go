package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/item"
	"github.com/gearshare/service-rental/internal/domain/user"
)

type requestFixture struct {
	users    *fakeUserRepo
	items    *fakeItemRepo
	requests *fakeRequestRepo
	service  *RequestService
	clock    time.Time
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	users := newFakeUserRepo()
	items := newFakeItemRepo()
	requests := newFakeRequestRepo()

	f := &requestFixture{users: users, items: items, requests: requests, clock: fixedNow}
	svc := NewRequestService(requests, items, users, zap.NewNop())
	svc.now = func() time.Time {
		// Advance on every read so postings get distinct creation times.
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	f.service = svc
	return f
}

func (f *requestFixture) registerUser(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u, err := user.NewUser(name, name+"@example.com", fixedNow)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u.ID()
}

func TestCreateRequest_UnknownUser(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.service.Create(context.Background(), uuid.New(), CreateItemRequestRequest{
		Description: "need a drill",
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestCreateRequest_EmptyDescription(t *testing.T) {
	f := newRequestFixture(t)
	requester := f.registerUser(t, "requester")

	_, err := f.service.Create(context.Background(), requester, CreateItemRequestRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestGetRequest_IncludesAnswers(t *testing.T) {
	f := newRequestFixture(t)
	requester := f.registerUser(t, "requester")
	owner := f.registerUser(t, "owner")

	dto, err := f.service.Create(context.Background(), requester, CreateItemRequestRequest{
		Description: "need a drill",
	})
	require.NoError(t, err)
	assert.Empty(t, dto.Items)

	reqID := dto.ID
	it, err := item.NewItem(owner, "drill", "cordless drill", true, &reqID, fixedNow)
	require.NoError(t, err)
	require.NoError(t, f.items.Create(context.Background(), it))

	got, err := f.service.Get(context.Background(), dto.ID, requester)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, it.ID(), got.Items[0].ID)
	assert.Equal(t, owner, got.Items[0].OwnerID)
}

func TestListOthers_ExcludesOwnRequests(t *testing.T) {
	f := newRequestFixture(t)
	alice := f.registerUser(t, "alice")
	bob := f.registerUser(t, "bob")

	mine, err := f.service.Create(context.Background(), alice, CreateItemRequestRequest{Description: "need a drill"})
	require.NoError(t, err)
	theirs, err := f.service.Create(context.Background(), bob, CreateItemRequestRequest{Description: "need a ladder"})
	require.NoError(t, err)

	list, err := f.service.ListOthers(context.Background(), alice, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, theirs.ID, list[0].ID)

	own, err := f.service.ListOwn(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)
}

func TestListOthers_NewestFirstAndPaged(t *testing.T) {
	f := newRequestFixture(t)
	viewer := f.registerUser(t, "viewer")
	poster := f.registerUser(t, "poster")

	var created []uuid.UUID
	for _, d := range []string{"first", "second", "third"} {
		dto, err := f.service.Create(context.Background(), poster, CreateItemRequestRequest{Description: d})
		require.NoError(t, err)
		created = append(created, dto.ID)
	}

	list, err := f.service.ListOthers(context.Background(), viewer, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, created[2], list[0].ID, "newest first")

	from, size := 1, 2
	page, err := f.service.ListOthers(context.Background(), viewer, &from, &size)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, created[1], page[0].ID)
	assert.Equal(t, created[0], page[1].ID)
}
